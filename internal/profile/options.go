package profile

type Gender string

const (
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderNonBinary      Gender = "Non-binary"
	GenderPreferNotToSay Gender = "Prefer not to say"
)

type WeightUnit string

const (
	WeightKilograms WeightUnit = "kg"
	WeightPounds    WeightUnit = "lbs"
)

type HeightUnit string

const (
	HeightCentimeters HeightUnit = "cm"
	HeightInches      HeightUnit = "inches"
)

// ActivityLevel is ordered from least to most active.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "Sedentary"
	ActivityLightlyActive    ActivityLevel = "Lightly Active"
	ActivityModeratelyActive ActivityLevel = "Moderately Active"
	ActivityVeryActive       ActivityLevel = "Very Active"
	ActivityExtremelyActive  ActivityLevel = "Extremely Active"
)

type Goal string

const (
	GoalWeightLoss        Goal = "Weight Loss"
	GoalWeightMaintenance Goal = "Weight Maintenance"
	GoalWeightGain        Goal = "Weight Gain"
	GoalMuscleBuilding    Goal = "Muscle Building"
	GoalOverallHealth     Goal = "Improve Overall Health"
	GoalBoostEnergy       Goal = "Boost Energy"
)

type PlanDuration string

const (
	DurationOneWeek    PlanDuration = "1 week"
	DurationTwoWeeks   PlanDuration = "2 weeks"
	DurationThreeWeeks PlanDuration = "3 weeks"
	DurationOneMonth   PlanDuration = "1 month"
)

// Days returns the number of days the duration asks the model to cover.
func (d PlanDuration) Days() int {
	switch d {
	case DurationOneWeek:
		return 7
	case DurationTwoWeeks:
		return 14
	case DurationThreeWeeks:
		return 21
	case DurationOneMonth:
		return 30
	default:
		return 0
	}
}

type Restriction string

const (
	RestrictionNone        Restriction = "None"
	RestrictionVegetarian  Restriction = "Vegetarian"
	RestrictionVegan       Restriction = "Vegan"
	RestrictionPescatarian Restriction = "Pescatarian"
	RestrictionKeto        Restriction = "Keto"
	RestrictionLowCarb     Restriction = "Low-Carb"
	RestrictionPaleo       Restriction = "Paleo"
	RestrictionGlutenFree  Restriction = "Gluten-Free"
	RestrictionDairyFree   Restriction = "Dairy-Free"
)

// Budget is ordered from tightest to unconstrained.
type Budget string

const (
	BudgetLow           Budget = "Low"
	BudgetMedium        Budget = "Medium"
	BudgetHigh          Budget = "High"
	BudgetNoConstraints Budget = "No Constraints"
)

// CookingTime is ordered from least to most time available.
type CookingTime string

const (
	CookingMinimal  CookingTime = "Minimal (15 min or less)"
	CookingModerate CookingTime = "Moderate (30 min)"
	CookingFlexible CookingTime = "Flexible (1 hour+)"
)

// Option lists in the order front ends present them. The first entry is the default.
var (
	Genders        = []Gender{GenderMale, GenderFemale, GenderNonBinary, GenderPreferNotToSay}
	WeightUnits    = []WeightUnit{WeightKilograms, WeightPounds}
	HeightUnits    = []HeightUnit{HeightCentimeters, HeightInches}
	ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivityExtremelyActive}
	Goals          = []Goal{GoalWeightLoss, GoalWeightMaintenance, GoalWeightGain, GoalMuscleBuilding, GoalOverallHealth, GoalBoostEnergy}
	PlanDurations  = []PlanDuration{DurationOneWeek, DurationTwoWeeks, DurationThreeWeeks, DurationOneMonth}
	Restrictions   = []Restriction{RestrictionNone, RestrictionVegetarian, RestrictionVegan, RestrictionPescatarian, RestrictionKeto, RestrictionLowCarb, RestrictionPaleo, RestrictionGlutenFree, RestrictionDairyFree}
	Budgets        = []Budget{BudgetLow, BudgetMedium, BudgetHigh, BudgetNoConstraints}
	CookingTimes   = []CookingTime{CookingMinimal, CookingModerate, CookingFlexible}
)

// Numeric bounds enforced by the input form.
const (
	MinAge         = 12
	MaxAge         = 100
	DefaultAge     = 30
	MinWeight      = 30
	MaxWeight      = 300
	DefaultWeight  = 70
	MinHeight      = 100
	MaxHeight      = 250
	DefaultHeight  = 170
	MinMealsPerDay = 2
	MaxMealsPerDay = 6
	DefaultMeals   = 3
)

// Strings converts a typed option list into plain strings.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
