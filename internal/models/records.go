// internal/models/records.go
package models

// FoodRecord is the persisted form of a food. CaloriesPerServing is
// informational for composites and is recomputed after loading.
type FoodRecord struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Keywords           []string        `json:"keywords"`
	CaloriesPerServing float64         `json:"caloriesPerServing"`
	IsComposite        bool            `json:"isComposite"`
	Components         []FoodComponent `json:"components,omitempty"`
}

// EntryRecord is the persisted form of a log entry.
type EntryRecord struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	MealType string  `json:"mealType"`
	FoodID   string  `json:"foodId"`
	Servings float64 `json:"servings"`
}
