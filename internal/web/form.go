package web

import (
	"net/http"
	"strconv"
	"strings"

	"diet-planner/internal/profile"
	"diet-planner/internal/shared"
)

// formOptions lists every select in the order the form shows it.
type formOptions struct {
	Genders        []string
	WeightUnits    []string
	HeightUnits    []string
	ActivityLevels []string
	Goals          []string
	PlanDurations  []string
	Restrictions   []string
	Budgets        []string
	CookingTimes   []string
}

var options = formOptions{
	Genders:        profile.Strings(profile.Genders),
	WeightUnits:    profile.Strings(profile.WeightUnits),
	HeightUnits:    profile.Strings(profile.HeightUnits),
	ActivityLevels: profile.Strings(profile.ActivityLevels),
	Goals:          profile.Strings(profile.Goals),
	PlanDurations:  profile.Strings(profile.PlanDurations),
	Restrictions:   profile.Strings(profile.Restrictions),
	Budgets:        profile.Strings(profile.Budgets),
	CookingTimes:   profile.Strings(profile.CookingTimes),
}

func defaultAnswers() profile.Answers {
	return profile.Answers{
		Age:           profile.DefaultAge,
		Gender:        options.Genders[0],
		Weight:        profile.DefaultWeight,
		WeightUnit:    options.WeightUnits[0],
		Height:        profile.DefaultHeight,
		HeightUnit:    options.HeightUnits[0],
		ActivityLevel: options.ActivityLevels[0],
		Goal:          options.Goals[0],
		PlanDuration:  options.PlanDurations[0],
		MealsPerDay:   profile.DefaultMeals,
		Budget:        options.Budgets[0],
		CookingTime:   options.CookingTimes[0],
	}
}

// withFormDefaults fills unanswered numbers so a re-rendered form never shows zero.
func withFormDefaults(a profile.Answers) profile.Answers {
	d := defaultAnswers()
	if a.Age == 0 {
		a.Age = d.Age
	}
	if a.Weight == 0 {
		a.Weight = d.Weight
	}
	if a.Height == 0 {
		a.Height = d.Height
	}
	if a.MealsPerDay == 0 {
		a.MealsPerDay = d.MealsPerDay
	}
	return a
}

// parseAnswers reads the submitted form. Blank numbers are left at zero so
// the profile applies its defaults.
func parseAnswers(r *http.Request) (profile.Answers, error) {
	if err := r.ParseForm(); err != nil {
		return profile.Answers{}, &shared.ValidationError{Field: "form", Reason: err.Error()}
	}

	a := profile.Answers{
		Name:                r.PostForm.Get("name"),
		Gender:              r.PostForm.Get("gender"),
		WeightUnit:          r.PostForm.Get("weight_unit"),
		HeightUnit:          r.PostForm.Get("height_unit"),
		ActivityLevel:       r.PostForm.Get("activity_level"),
		Goal:                r.PostForm.Get("goal"),
		PlanDuration:        r.PostForm.Get("plan_duration"),
		DietaryRestrictions: r.PostForm["dietary_restrictions"],
		FoodPreferences:     r.PostForm.Get("food_preferences"),
		Allergies:           r.PostForm.Get("allergies"),
		HealthConditions:    r.PostForm.Get("health_conditions"),
		Budget:              r.PostForm.Get("budget"),
		CookingTime:         r.PostForm.Get("cooking_time"),
	}

	numbers := []struct {
		key, field string
		dst        *int
	}{
		{"age", "age", &a.Age},
		{"weight", "weight", &a.Weight},
		{"height", "height", &a.Height},
		{"meals_per_day", "meals per day", &a.MealsPerDay},
	}
	for _, n := range numbers {
		raw := strings.TrimSpace(r.PostForm.Get(n.key))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			if strings.TrimSpace(a.Name) == "" {
				return a, &shared.ValidationError{Field: "name", Reason: "required"}
			}
			return a, &shared.ValidationError{Field: n.field, Reason: "must be a whole number"}
		}
		*n.dst = v
	}
	return a, nil
}
