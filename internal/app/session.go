// internal/app/session.go
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"diet-manager/internal/catalog"
	"diet-manager/internal/foodlog"
	"diet-manager/internal/models"
	"diet-manager/internal/storage"
)

// Session owns the in-memory state of one interactive run: the catalog, the
// log built on top of it and the user profile.
type Session struct {
	Catalog *catalog.Catalog
	Log     *foodlog.Log
	Profile models.UserProfile

	store    storage.Storage
	profiles *storage.ProfileFile
}

// Open loads everything it can from store and profiles. Load problems are
// logged and replaced by empty or default state; they never fail the call.
func Open(store storage.Storage, profiles *storage.ProfileFile) *Session {
	cat := catalog.New()
	s := &Session{
		Catalog:  cat,
		Log:      foodlog.New(cat),
		Profile:  models.DefaultProfile(),
		store:    store,
		profiles: profiles,
	}

	records, err := store.LoadFoods()
	if err == nil {
		err = cat.Load(records)
	}
	if err != nil {
		slog.Warn("failed to load food database, starting with an empty catalog", "error", err)
	}

	entries, err := store.LoadEntries()
	if err != nil {
		slog.Warn("failed to load food log, starting with an empty log", "error", err)
	} else if skipped := s.Log.Load(entries); skipped > 0 {
		slog.Warn("skipped unreadable log entries", "count", skipped)
	}

	if profiles != nil {
		profile, err := profiles.Load()
		if err != nil {
			slog.Warn("failed to load profile, using defaults", "file", profiles.Path(), "error", err)
		}
		s.Profile = profile
	}

	slog.Debug("session opened", "foods", cat.Len(), "entries", len(s.Log.Entries()))
	return s
}

// Save writes the catalog, the log and the profile. Every part is attempted
// even if an earlier one fails.
func (s *Session) Save() error {
	var errs []error
	if err := s.store.SaveFoods(s.Catalog.Records()); err != nil {
		errs = append(errs, fmt.Errorf("save foods: %w", err))
	}
	if err := s.store.SaveEntries(s.Log.Records()); err != nil {
		errs = append(errs, fmt.Errorf("save log: %w", err))
	}
	if s.profiles != nil {
		if err := s.profiles.Save(s.Profile); err != nil {
			errs = append(errs, fmt.Errorf("save profile: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) Close() error {
	return s.store.Close()
}

// MealCalories is one line of a per-meal breakdown.
type MealCalories struct {
	MealType models.MealType `json:"meal_type"`
	Calories float64         `json:"calories"`
}

// DaySummary compares one day's intake against the profile's target.
type DaySummary struct {
	Date      models.Date    `json:"date"`
	Consumed  float64        `json:"consumed"`
	Target    float64        `json:"target"`
	Remaining float64        `json:"remaining"`
	ByMeal    []MealCalories `json:"by_meal,omitempty"`
}

// Summary reports consumed calories for date with a breakdown over the
// standard meal types that have any calories.
func (s *Session) Summary(date models.Date) (DaySummary, error) {
	consumed, err := s.Log.TotalCaloriesForDate(date)
	if err != nil {
		return DaySummary{}, err
	}
	target := s.Profile.DailyCalorieNeeds()
	summary := DaySummary{
		Date:      date,
		Consumed:  consumed,
		Target:    target,
		Remaining: target - consumed,
	}

	for _, mealType := range models.MealTypes {
		calories, err := s.Log.CaloriesByMealType(date, mealType)
		if err != nil {
			return DaySummary{}, err
		}
		if calories > 0 {
			summary.ByMeal = append(summary.ByMeal, MealCalories{MealType: mealType, Calories: calories})
		}
	}
	return summary, nil
}

// WeeklySummary returns the seven days ending on end, oldest first. The
// current profile target is used for every day.
func (s *Session) WeeklySummary(end models.Date) ([]DaySummary, error) {
	daily, err := s.Log.DailyCalorieSummary()
	if err != nil {
		return nil, err
	}
	target := s.Profile.DailyCalorieNeeds()

	days := make([]DaySummary, 0, 7)
	for i := 6; i >= 0; i-- {
		date := end.AddDays(-i)
		consumed := daily[date]
		days = append(days, DaySummary{
			Date:      date,
			Consumed:  consumed,
			Target:    target,
			Remaining: target - consumed,
		})
	}
	return days, nil
}
