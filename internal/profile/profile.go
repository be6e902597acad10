// Package profile holds the answers a user gives about themselves and their diet.
package profile

import (
	"fmt"
	"slices"
	"strings"

	"diet-planner/internal/shared"

	"gopkg.in/yaml.v3"
)

// Answers is the raw, unvalidated submission of a front end.
// Zero values mean "not answered" and take the form's defaults.
type Answers struct {
	Name                string   `yaml:"name"`
	Age                 int      `yaml:"age"`
	Gender              string   `yaml:"gender"`
	Weight              int      `yaml:"weight"`
	WeightUnit          string   `yaml:"weight_unit"`
	Height              int      `yaml:"height"`
	HeightUnit          string   `yaml:"height_unit"`
	ActivityLevel       string   `yaml:"activity_level"`
	Goal                string   `yaml:"goal"`
	PlanDuration        string   `yaml:"plan_duration"`
	DietaryRestrictions []string `yaml:"dietary_restrictions"`
	FoodPreferences     string   `yaml:"food_preferences"`
	MealsPerDay         int      `yaml:"meals_per_day"`
	Allergies           string   `yaml:"allergies"`
	HealthConditions    string   `yaml:"health_conditions"`
	Budget              string   `yaml:"budget"`
	CookingTime         string   `yaml:"cooking_time"`
}

// UserProfile is a validated submission. It is built once per request and never mutated.
type UserProfile struct {
	Name                string
	Age                 int
	Gender              Gender
	Weight              int
	WeightUnit          WeightUnit
	Height              int
	HeightUnit          HeightUnit
	ActivityLevel       ActivityLevel
	Goal                Goal
	PlanDuration        PlanDuration
	DietaryRestrictions []Restriction
	FoodPreferences     string
	MealsPerDay         int
	Allergies           string
	HealthConditions    string
	Budget              Budget
	CookingTime         CookingTime
}

// ParseYAML decodes a profile answer file.
func ParseYAML(data []byte) (Answers, error) {
	var a Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Answers{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	return a, nil
}

// New validates answers and builds a UserProfile.
// The name is checked first so a missing name is reported before anything else.
func New(a Answers) (UserProfile, error) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return UserProfile{}, &shared.ValidationError{Field: "name", Reason: "required"}
	}

	p := UserProfile{
		Name:             name,
		FoodPreferences:  a.FoodPreferences,
		Allergies:        a.Allergies,
		HealthConditions: a.HealthConditions,
	}

	var err error
	if p.Age, err = intInRange("age", a.Age, DefaultAge, MinAge, MaxAge); err != nil {
		return UserProfile{}, err
	}
	if p.Weight, err = intInRange("weight", a.Weight, DefaultWeight, MinWeight, MaxWeight); err != nil {
		return UserProfile{}, err
	}
	if p.Height, err = intInRange("height", a.Height, DefaultHeight, MinHeight, MaxHeight); err != nil {
		return UserProfile{}, err
	}
	if p.MealsPerDay, err = intInRange("meals per day", a.MealsPerDay, DefaultMeals, MinMealsPerDay, MaxMealsPerDay); err != nil {
		return UserProfile{}, err
	}

	if p.Gender, err = oneOf("gender", a.Gender, Genders); err != nil {
		return UserProfile{}, err
	}
	if p.WeightUnit, err = oneOf("weight unit", a.WeightUnit, WeightUnits); err != nil {
		return UserProfile{}, err
	}
	if p.HeightUnit, err = oneOf("height unit", a.HeightUnit, HeightUnits); err != nil {
		return UserProfile{}, err
	}
	if p.ActivityLevel, err = oneOf("activity level", a.ActivityLevel, ActivityLevels); err != nil {
		return UserProfile{}, err
	}
	if p.Goal, err = oneOf("goal", a.Goal, Goals); err != nil {
		return UserProfile{}, err
	}
	if p.PlanDuration, err = oneOf("plan duration", a.PlanDuration, PlanDurations); err != nil {
		return UserProfile{}, err
	}
	if p.Budget, err = oneOf("budget", a.Budget, Budgets); err != nil {
		return UserProfile{}, err
	}
	if p.CookingTime, err = oneOf("cooking time", a.CookingTime, CookingTimes); err != nil {
		return UserProfile{}, err
	}

	restrictions := make([]Restriction, 0, len(a.DietaryRestrictions))
	for _, raw := range a.DietaryRestrictions {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		r, err := oneOf("dietary restrictions", raw, Restrictions)
		if err != nil {
			return UserProfile{}, err
		}
		if !slices.Contains(restrictions, r) {
			restrictions = append(restrictions, r)
		}
	}
	p.DietaryRestrictions = NormalizeRestrictions(restrictions)

	return p, nil
}

// NormalizeRestrictions drops the "None" sentinel when other restrictions are selected.
// Combinations are otherwise accepted as given.
func NormalizeRestrictions(rs []Restriction) []Restriction {
	if len(rs) < 2 || !slices.Contains(rs, RestrictionNone) {
		return rs
	}
	out := make([]Restriction, 0, len(rs)-1)
	for _, r := range rs {
		if r != RestrictionNone {
			out = append(out, r)
		}
	}
	return out
}

func intInRange(field string, v, def, lo, hi int) (int, error) {
	if v == 0 {
		return def, nil
	}
	if v < lo || v > hi {
		return 0, &shared.ValidationError{Field: field, Reason: fmt.Sprintf("must be between %d and %d", lo, hi)}
	}
	return v, nil
}

func oneOf[T ~string](field, raw string, options []T) (T, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return options[0], nil
	}
	for _, o := range options {
		if strings.EqualFold(string(o), raw) {
			return o, nil
		}
	}
	return "", &shared.ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("%q is not one of %s", raw, strings.Join(Strings(options), ", ")),
	}
}
