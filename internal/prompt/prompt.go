// Package prompt renders a UserProfile into the diet plan request sent to the model.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"diet-planner/internal/profile"
)

//go:embed diet_plan_prompt.md
var dietPlanPrompt string

var dietPlanTmpl = template.Must(template.New("dietplan").Option("missingkey=error").Parse(dietPlanPrompt))

// Fallbacks substituted for unanswered free-text fields.
const (
	NoneFallback        = "None"
	PreferencesFallback = "No specific preferences"
)

type promptData struct {
	Name                string
	Age                 int
	Gender              string
	Weight              int
	WeightUnit          string
	Height              int
	HeightUnit          string
	ActivityLevel       string
	Goal                string
	PlanDuration        string
	DietaryRestrictions string
	FoodPreferences     string
	MealsPerDay         int
	Allergies           string
	HealthConditions    string
	Budget              string
	CookingTime         string
}

// Render fills the diet plan template with every field of p.
// Free text is inserted verbatim.
func Render(p profile.UserProfile) string {
	var buf strings.Builder
	if err := dietPlanTmpl.Execute(&buf, newPromptData(p)); err != nil {
		// promptData is a flat struct of strings and ints; execution cannot fail.
		panic(fmt.Sprintf("prompt: execute template: %v", err))
	}
	return buf.String()
}

// Restrictions formats the restriction set the way it appears in the prompt.
func Restrictions(rs []profile.Restriction) string {
	rs = profile.NormalizeRestrictions(rs)
	if len(rs) == 0 {
		return NoneFallback
	}
	return strings.Join(profile.Strings(rs), ", ")
}

func newPromptData(p profile.UserProfile) promptData {
	return promptData{
		Name:                p.Name,
		Age:                 p.Age,
		Gender:              string(p.Gender),
		Weight:              p.Weight,
		WeightUnit:          string(p.WeightUnit),
		Height:              p.Height,
		HeightUnit:          string(p.HeightUnit),
		ActivityLevel:       string(p.ActivityLevel),
		Goal:                string(p.Goal),
		PlanDuration:        string(p.PlanDuration),
		DietaryRestrictions: Restrictions(p.DietaryRestrictions),
		FoodPreferences:     orDefault(p.FoodPreferences, PreferencesFallback),
		MealsPerDay:         p.MealsPerDay,
		Allergies:           orDefault(p.Allergies, NoneFallback),
		HealthConditions:    orDefault(p.HealthConditions, NoneFallback),
		Budget:              string(p.Budget),
		CookingTime:         string(p.CookingTime),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
