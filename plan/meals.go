package plan

// Meal is one named slot of a MealPlan.
type Meal struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// MealPlan is a derived view of a day's target and is never stored.
type MealPlan struct {
	Calories int    `json:"calories"`
	Macros   Macros `json:"macros"`
	Meals    []Meal `json:"meals"`
}

// mealSplit is the canonical per-meal calorie share. The weights sum to 1.
// Macros are reported in aggregate, not per meal.
var mealSplit = []struct {
	name   string
	weight float64
}{
	{"Breakfast", 0.25},
	{"Lunch", 0.35},
	{"Dinner", 0.30},
	{"Snack", 0.10},
}

// MaxMealRoundingDrift bounds |sum(meal calories) - total|. Each of the four
// slots rounds independently by at most half a calorie.
const MaxMealRoundingDrift = 2

// DecomposeMeals spreads totalCalories over the four fixed meal slots. A
// non-positive total yields all-zero meals.
func DecomposeMeals(totalCalories int, macros Macros) MealPlan {
	total := max(totalCalories, 0)
	meals := make([]Meal, len(mealSplit))
	for i, s := range mealSplit {
		meals[i] = Meal{Name: s.name, Calories: round(float64(total) * s.weight)}
	}
	return MealPlan{Calories: total, Macros: macros, Meals: meals}
}
