// internal/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"diet-manager/internal/models"
)

var ErrDuplicateFood = errors.New("duplicate food id")

// Catalog owns every food known to the program and resolves food ids for
// composite foods and log entries.
type Catalog struct {
	foods []models.Food
	byID  map[string]models.Food
}

func New() *Catalog {
	return &Catalog{byID: make(map[string]models.Food)}
}

func (c *Catalog) register(food models.Food) {
	c.foods = append(c.foods, food)
	c.byID[food.ID()] = food
}

func (c *Catalog) AddBasicFood(name string, keywords []string, caloriesPerServing float64) *models.BasicFood {
	food := models.NewBasicFood(uuid.NewString(), name, keywords, caloriesPerServing)
	c.register(food)
	return food
}

// AddCompositeFood stores a composite whose components all reference foods
// already in the catalog.
func (c *Catalog) AddCompositeFood(name string, keywords []string, components []models.FoodComponent) (*models.CompositeFood, error) {
	for _, comp := range components {
		if _, ok := c.byID[comp.FoodID]; !ok {
			return nil, fmt.Errorf("component %s: %w", comp.FoodID, models.ErrFoodNotFound)
		}
	}
	food := models.NewCompositeFood(uuid.NewString(), name, keywords, components)
	c.register(food)
	return food, nil
}

func (c *Catalog) FoodByID(id string) (models.Food, bool) {
	food, ok := c.byID[id]
	return food, ok
}

// FoodByName matches the whole name, ignoring case.
func (c *Catalog) FoodByName(name string) (models.Food, bool) {
	for _, food := range c.foods {
		if strings.EqualFold(food.Name(), name) {
			return food, true
		}
	}
	return nil, false
}

// FoodByIDPrefix returns the first food, in insertion order, whose id starts
// with prefix.
func (c *Catalog) FoodByIDPrefix(prefix string) (models.Food, bool) {
	if prefix == "" {
		return nil, false
	}
	for _, food := range c.foods {
		if strings.HasPrefix(food.ID(), prefix) {
			return food, true
		}
	}
	return nil, false
}

func (c *Catalog) Foods() []models.Food {
	return slices.Clone(c.foods)
}

func (c *Catalog) Len() int {
	return len(c.foods)
}

func (c *Catalog) SearchByAllKeywords(keywords []string) []models.Food {
	var out []models.Food
	for _, food := range c.foods {
		if food.MatchesAllKeywords(keywords) {
			out = append(out, food)
		}
	}
	return out
}

func (c *Catalog) SearchByAnyKeyword(keywords []string) []models.Food {
	var out []models.Food
	for _, food := range c.foods {
		if food.MatchesAnyKeyword(keywords) {
			out = append(out, food)
		}
	}
	return out
}

// UpdateBasicCalories changes a basic food in place. Composites that use it
// pick up the new value on their next calorie lookup.
func (c *Catalog) UpdateBasicCalories(id string, caloriesPerServing float64) bool {
	basic, ok := c.byID[id].(*models.BasicFood)
	if !ok {
		return false
	}
	basic.SetCaloriesPerServing(caloriesPerServing)
	return true
}

// Delete removes a food without checking whether composites still use it.
// Such composites fail calorie lookups with models.ErrFoodNotFound.
func (c *Catalog) Delete(id string) bool {
	i := slices.IndexFunc(c.foods, func(f models.Food) bool { return f.ID() == id })
	if i < 0 {
		return false
	}
	c.foods = slices.Delete(c.foods, i, i+1)
	delete(c.byID, id)
	return true
}

// Referrers returns the composites that list id as a direct component.
func (c *Catalog) Referrers(id string) []models.Food {
	var out []models.Food
	for _, food := range c.foods {
		composite, ok := food.(*models.CompositeFood)
		if !ok {
			continue
		}
		if slices.ContainsFunc(composite.Components(), func(fc models.FoodComponent) bool {
			return fc.FoodID == id
		}) {
			out = append(out, food)
		}
	}
	return out
}

func (c *Catalog) reset() {
	c.foods = nil
	c.byID = make(map[string]models.Food)
}

// Records converts the catalog to its persisted form, in insertion order.
func (c *Catalog) Records() []models.FoodRecord {
	records := make([]models.FoodRecord, 0, len(c.foods))
	for _, food := range c.foods {
		calories, err := food.CaloriesPerServing(c)
		if err != nil {
			slog.Warn("saving food with unresolved calories", "id", food.ID(), "name", food.Name(), "error", err)
		}
		rec := models.FoodRecord{
			ID:                 food.ID(),
			Name:               food.Name(),
			Keywords:           food.Keywords(),
			CaloriesPerServing: calories,
			IsComposite:        food.IsComposite(),
		}
		if rec.Keywords == nil {
			rec.Keywords = []string{}
		}
		if composite, ok := food.(*models.CompositeFood); ok {
			rec.Components = composite.Components()
		}
		records = append(records, rec)
	}
	return records
}

// Load replaces the catalog contents with records.
//
// Composites may reference foods that appear later in records, so loading
// runs in two passes: the first registers every food (composites without
// components), the second resolves component ids against the full index.
// Unknown component ids are kept so the composite fails the same way it did
// before saving. Duplicate ids and cyclic composites are errors, and any
// error leaves the catalog empty.
func (c *Catalog) Load(records []models.FoodRecord) error {
	c.reset()
	if err := c.load(records); err != nil {
		c.reset()
		return err
	}
	return nil
}

func (c *Catalog) load(records []models.FoodRecord) error {
	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("food %q has no id", rec.Name)
		}
		if _, exists := c.byID[rec.ID]; exists {
			return fmt.Errorf("food %s: %w", rec.ID, ErrDuplicateFood)
		}
		if rec.IsComposite {
			c.register(models.NewCompositeFood(rec.ID, rec.Name, rec.Keywords, nil))
		} else {
			c.register(models.NewBasicFood(rec.ID, rec.Name, rec.Keywords, rec.CaloriesPerServing))
		}
	}

	for _, rec := range records {
		if !rec.IsComposite {
			continue
		}
		for _, comp := range rec.Components {
			if _, ok := c.byID[comp.FoodID]; !ok {
				slog.Warn("composite food references unknown food", "id", rec.ID, "component", comp.FoodID)
			}
		}
		c.byID[rec.ID].(*models.CompositeFood).SetComponents(rec.Components)
	}

	return c.findCycle()
}

// findCycle walks the composite graph depth first. Unknown component ids
// are leaves, so a dangling reference cannot hide a cycle behind it.
func (c *Catalog) findCycle() error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(c.foods))
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			i := slices.Index(path, id)
			return &models.CycleError{Path: append(slices.Clone(path[i:]), id)}
		}
		composite, ok := c.byID[id].(*models.CompositeFood)
		if !ok {
			state[id] = done
			return nil
		}
		state[id] = visiting
		path = append(path, id)
		for _, comp := range composite.Components() {
			if err := visit(comp.FoodID); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	for _, food := range c.foods {
		if err := visit(food.ID()); err != nil {
			return fmt.Errorf("food %s: %w", food.ID(), err)
		}
	}
	return nil
}
