// internal/server/tools.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"diet-manager/internal/models"
)

type SearchFoodsParams struct {
	Keywords string `json:"keywords" description:"Comma separated keywords"`
	MatchAll bool   `json:"match_all,omitempty" description:"Require every keyword instead of any"`
}

type AddBasicFoodParams struct {
	Name               string  `json:"name" description:"Food name"`
	Keywords           string  `json:"keywords,omitempty" description:"Comma separated keywords"`
	CaloriesPerServing float64 `json:"calories_per_serving" description:"Calories in one serving"`
}

type AddCompositeFoodParams struct {
	Name       string                 `json:"name" description:"Food name"`
	Keywords   string                 `json:"keywords,omitempty" description:"Comma separated keywords"`
	Components []models.FoodComponent `json:"components" description:"Component food ids and servings"`
}

type FoodIDParams struct {
	ID string `json:"id" description:"Food id"`
}

type LogFoodParams struct {
	FoodID   string  `json:"food_id" description:"Food id or unique id prefix"`
	Servings float64 `json:"servings" description:"Number of servings eaten"`
	MealType string  `json:"meal_type,omitempty" description:"Breakfast, Lunch, Dinner, Snack or Other"`
	Date     string  `json:"date,omitempty" description:"Date eaten (YYYY-MM-DD), defaults to today"`
	Time     string  `json:"time,omitempty" description:"Time eaten (HH:mm), defaults to now"`
}

type EntryIDParams struct {
	ID string `json:"id" description:"Log entry id"`
}

type DateParams struct {
	Date string `json:"date,omitempty" description:"Date (YYYY-MM-DD), defaults to today"`
}

type foodView struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Keywords           []string               `json:"keywords"`
	CaloriesPerServing *float64               `json:"calories_per_serving,omitempty"`
	IsComposite        bool                   `json:"is_composite"`
	Components         []models.FoodComponent `json:"components,omitempty"`
	Error              string                 `json:"error,omitempty"`
}

type entryView struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	MealType string   `json:"meal_type"`
	FoodID   string   `json:"food_id"`
	Servings float64  `json:"servings"`
	Calories *float64 `json:"calories,omitempty"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	return nil
}

func (s *DietServer) viewFood(food models.Food) foodView {
	v := foodView{
		ID:          food.ID(),
		Name:        food.Name(),
		Keywords:    food.Keywords(),
		IsComposite: food.IsComposite(),
	}
	if calories, err := food.CaloriesPerServing(s.session.Catalog); err != nil {
		v.Error = err.Error()
	} else {
		v.CaloriesPerServing = &calories
	}
	if composite, ok := food.(*models.CompositeFood); ok {
		v.Components = composite.Components()
	}
	return v
}

func (s *DietServer) viewFoods(foods []models.Food) []foodView {
	views := make([]foodView, 0, len(foods))
	for _, food := range foods {
		views = append(views, s.viewFood(food))
	}
	return views
}

func (s *DietServer) viewEntry(e models.LogEntry) entryView {
	v := entryView{
		ID:       e.ID,
		Date:     e.Date.String(),
		Time:     e.Time.String(),
		MealType: string(e.MealType),
		FoodID:   e.FoodID,
		Servings: e.Servings,
	}
	if calories, err := e.TotalCalories(s.session.Catalog); err == nil {
		v.Calories = &calories
	}
	return v
}

func parseDateOrToday(s string) (models.Date, error) {
	if s == "" {
		return models.Today(), nil
	}
	return models.ParseDate(s)
}

func (s *DietServer) handleListFoods(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(s.viewFoods(s.session.Catalog.Foods()))
}

func (s *DietServer) handleSearchFoods(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SearchFoodsParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	keywords := models.SplitKeywords(params.Keywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("at least one keyword is required")
	}

	var foods []models.Food
	if params.MatchAll {
		foods = s.session.Catalog.SearchByAllKeywords(keywords)
	} else {
		foods = s.session.Catalog.SearchByAnyKeyword(keywords)
	}
	return s.createJSONResponse(s.viewFoods(foods))
}

func (s *DietServer) handleAddBasicFood(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params AddBasicFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Name == "" {
		return nil, fmt.Errorf("food name is required")
	}

	food := s.session.Catalog.AddBasicFood(params.Name, models.SplitKeywords(params.Keywords), params.CaloriesPerServing)
	return s.createJSONResponse(s.viewFood(food))
}

func (s *DietServer) handleAddCompositeFood(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params AddCompositeFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Name == "" {
		return nil, fmt.Errorf("food name is required")
	}
	if len(params.Components) == 0 {
		return nil, fmt.Errorf("at least one component is required")
	}

	food, err := s.session.Catalog.AddCompositeFood(params.Name, models.SplitKeywords(params.Keywords), params.Components)
	if err != nil {
		return nil, fmt.Errorf("failed to add composite food: %w", err)
	}
	return s.createJSONResponse(s.viewFood(food))
}

func (s *DietServer) handleDeleteFood(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params FoodIDParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return s.createJSONResponse(map[string]interface{}{
		"deleted": s.session.Catalog.Delete(params.ID),
	})
}

func (s *DietServer) handleLogFood(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	food, ok := s.session.Catalog.FoodByID(params.FoodID)
	if !ok {
		food, ok = s.session.Catalog.FoodByIDPrefix(params.FoodID)
	}
	if !ok {
		return nil, fmt.Errorf("food %s: %w", params.FoodID, models.ErrFoodNotFound)
	}

	date, err := parseDateOrToday(params.Date)
	if err != nil {
		return nil, err
	}

	clock := models.ClockOf(time.Now())
	if params.Time != "" {
		if clock, err = models.ParseTimeOfDay(params.Time); err != nil {
			return nil, err
		}
	}

	mealType := models.MealType(params.MealType)
	if mealType == "" {
		mealType = models.Other
	}

	entry, ok := s.session.Log.AddEntry(date, clock, mealType, food.ID(), params.Servings)
	if !ok {
		return nil, fmt.Errorf("food %s: %w", params.FoodID, models.ErrFoodNotFound)
	}
	return s.createJSONResponse(s.viewEntry(entry))
}

func (s *DietServer) handleDeleteEntry(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EntryIDParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return s.createJSONResponse(map[string]interface{}{
		"deleted": s.session.Log.DeleteEntry(params.ID),
	})
}

func (s *DietServer) handleUndo(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	undone := s.session.Log.Undo()
	return s.createJSONResponse(map[string]interface{}{
		"undone":   undone,
		"can_undo": s.session.Log.CanUndo(),
	})
}

func (s *DietServer) handleGetLog(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params DateParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	date, err := parseDateOrToday(params.Date)
	if err != nil {
		return nil, err
	}

	entries := s.session.Log.EntriesByDate(date)
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, s.viewEntry(e))
	}
	return s.createJSONResponse(views)
}

func (s *DietServer) handleDailySummary(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params DateParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	date, err := parseDateOrToday(params.Date)
	if err != nil {
		return nil, err
	}

	summary, err := s.session.Summary(date)
	if err != nil {
		if errors.Is(err, models.ErrCycleDetected) {
			return nil, fmt.Errorf("catalog is inconsistent: %w", err)
		}
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	return s.createJSONResponse(summary)
}

func (s *DietServer) registerTools() {
	s.tools = map[string]toolHandler{
		"list_foods":         s.handleListFoods,
		"search_foods":       s.handleSearchFoods,
		"add_basic_food":     s.handleAddBasicFood,
		"add_composite_food": s.handleAddCompositeFood,
		"delete_food":        s.handleDeleteFood,
		"log_food":           s.handleLogFood,
		"delete_entry":       s.handleDeleteEntry,
		"undo":               s.handleUndo,
		"get_log":            s.handleGetLog,
		"daily_summary":      s.handleDailySummary,
	}
	s.mutates = map[string]bool{
		"add_basic_food":     true,
		"add_composite_food": true,
		"delete_food":        true,
		"log_food":           true,
		"delete_entry":       true,
		"undo":               true,
	}
}

// ToolNames lists the registered tools.
func (s *DietServer) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	return names
}
