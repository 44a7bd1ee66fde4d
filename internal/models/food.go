// internal/models/food.go
package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrFoodNotFound  = errors.New("food not found")
	ErrCycleDetected = errors.New("cycle detected in composite food")
)

// CycleError reports a composite food that reaches itself through its
// components. Path lists food ids from the first repeated food back to it.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycleDetected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCycleDetected.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// Resolver looks foods up by id. The catalog is the only implementation
// outside of tests.
type Resolver interface {
	FoodByID(id string) (Food, bool)
}

// Food is implemented by *BasicFood and *CompositeFood only.
type Food interface {
	ID() string
	Name() string
	Keywords() []string
	IsComposite() bool
	CaloriesPerServing(r Resolver) (float64, error)
	MatchesAllKeywords(query []string) bool
	MatchesAnyKeyword(query []string) bool

	sealed()
}

type foodBase struct {
	id       string
	name     string
	keywords []string
}

func (f *foodBase) ID() string   { return f.id }
func (f *foodBase) Name() string { return f.name }

func (f *foodBase) Keywords() []string {
	return slices.Clone(f.keywords)
}

func (f *foodBase) MatchesAllKeywords(query []string) bool {
	for _, q := range query {
		if !slices.Contains(f.keywords, q) {
			return false
		}
	}
	return true
}

func (f *foodBase) MatchesAnyKeyword(query []string) bool {
	for _, q := range query {
		if slices.Contains(f.keywords, q) {
			return true
		}
	}
	return false
}

func (f *foodBase) sealed() {}

// BasicFood has a fixed calorie value per serving.
type BasicFood struct {
	foodBase
	calories float64
}

func NewBasicFood(id, name string, keywords []string, caloriesPerServing float64) *BasicFood {
	return &BasicFood{
		foodBase: foodBase{id: id, name: name, keywords: slices.Clone(keywords)},
		calories: caloriesPerServing,
	}
}

func (b *BasicFood) IsComposite() bool { return false }

func (b *BasicFood) CaloriesPerServing(Resolver) (float64, error) {
	return b.calories, nil
}

func (b *BasicFood) SetCaloriesPerServing(calories float64) {
	b.calories = calories
}

// FoodComponent references a catalog food by id.
type FoodComponent struct {
	FoodID   string  `json:"foodId"`
	Servings float64 `json:"servings"`
}

// CompositeFood derives its calories from its components every time they
// are requested, so edits to any nested food show up immediately.
type CompositeFood struct {
	foodBase
	components []FoodComponent
}

func NewCompositeFood(id, name string, keywords []string, components []FoodComponent) *CompositeFood {
	return &CompositeFood{
		foodBase:   foodBase{id: id, name: name, keywords: slices.Clone(keywords)},
		components: slices.Clone(components),
	}
}

func (c *CompositeFood) IsComposite() bool { return true }

func (c *CompositeFood) Components() []FoodComponent {
	return slices.Clone(c.components)
}

func (c *CompositeFood) SetComponents(components []FoodComponent) {
	c.components = slices.Clone(components)
}

func (c *CompositeFood) CaloriesPerServing(r Resolver) (float64, error) {
	return c.resolveCalories(r, nil)
}

// resolveCalories walks the component graph depth first. path holds the ids
// of the composites currently being resolved.
func (c *CompositeFood) resolveCalories(r Resolver, path []string) (float64, error) {
	if i := slices.Index(path, c.id); i >= 0 {
		cycle := append(slices.Clone(path[i:]), c.id)
		return 0, &CycleError{Path: cycle}
	}
	path = append(path, c.id)

	var total float64
	for _, comp := range c.components {
		food, ok := r.FoodByID(comp.FoodID)
		if !ok {
			return 0, fmt.Errorf("component %s of %q: %w", comp.FoodID, c.name, ErrFoodNotFound)
		}

		var calories float64
		var err error
		switch f := food.(type) {
		case *CompositeFood:
			calories, err = f.resolveCalories(r, path)
		default:
			calories, err = f.CaloriesPerServing(r)
		}
		if err != nil {
			return 0, err
		}
		total += calories * comp.Servings
	}
	return total, nil
}

// SplitKeywords parses a comma separated keyword list, trimming spaces and
// dropping empty items. Case is preserved.
func SplitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
