// internal/foodlog/log.go
package foodlog

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"diet-manager/internal/models"
)

// Log holds dated food log entries in insertion order and records an undo
// command for every mutation.
type Log struct {
	foods   models.Resolver
	entries []models.LogEntry
	undo    undoStack
}

// New returns an empty log whose entries resolve foods through foods.
func New(foods models.Resolver) *Log {
	return &Log{foods: foods}
}

func (l *Log) indexOf(id string) int {
	return slices.IndexFunc(l.entries, func(e models.LogEntry) bool { return e.ID == id })
}

// AddEntry appends an entry for a food in the catalog. It returns false,
// and records nothing, when foodID does not resolve.
func (l *Log) AddEntry(date models.Date, clock models.TimeOfDay, mealType models.MealType, foodID string, servings float64) (models.LogEntry, bool) {
	if _, ok := l.foods.FoodByID(foodID); !ok {
		return models.LogEntry{}, false
	}
	entry := models.LogEntry{
		ID:       uuid.NewString(),
		Date:     date,
		Time:     clock,
		MealType: mealType,
		FoodID:   foodID,
		Servings: servings,
	}
	l.entries = append(l.entries, entry)
	l.undo.push(command{kind: commandAdd, after: entry})
	return entry, true
}

func (l *Log) DeleteEntry(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	removed := l.entries[i]
	l.entries = slices.Delete(l.entries, i, i+1)
	l.undo.push(command{kind: commandDelete, before: removed, index: i})
	return true
}

// UpdateEntry replaces the fields of entry id. Unknown entries and foods
// that do not resolve leave the log unchanged.
func (l *Log) UpdateEntry(id string, date models.Date, clock models.TimeOfDay, mealType models.MealType, foodID string, servings float64) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	if _, ok := l.foods.FoodByID(foodID); !ok {
		return false
	}
	before := l.entries[i]
	after := models.LogEntry{
		ID:       id,
		Date:     date,
		Time:     clock,
		MealType: mealType,
		FoodID:   foodID,
		Servings: servings,
	}
	l.entries[i] = after
	l.undo.push(command{kind: commandUpdate, before: before, after: after})
	return true
}

// Undo reverts the most recent mutation. It returns false when there is
// nothing left to undo.
func (l *Log) Undo() bool {
	cmd, ok := l.undo.pop()
	if !ok {
		return false
	}

	switch cmd.kind {
	case commandAdd:
		l.entries = slices.DeleteFunc(l.entries, func(e models.LogEntry) bool {
			return e.ID == cmd.after.ID
		})
	case commandDelete:
		at := min(cmd.index, len(l.entries))
		l.entries = slices.Insert(l.entries, at, cmd.before)
	case commandUpdate:
		if i := l.indexOf(cmd.after.ID); i >= 0 {
			l.entries[i] = cmd.before
		}
	}
	slog.Debug("undid log command", "kind", cmd.kind.String(), "remaining", l.undo.len())
	return true
}

func (l *Log) CanUndo() bool { return l.undo.len() > 0 }

func (l *Log) ClearUndo() { l.undo.clear() }

func (l *Log) Entry(id string) (models.LogEntry, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.entries[i], true
	}
	return models.LogEntry{}, false
}

// EntryByIDPrefix finds the first entry on date whose id starts with prefix.
func (l *Log) EntryByIDPrefix(date models.Date, prefix string) (models.LogEntry, bool) {
	if prefix == "" {
		return models.LogEntry{}, false
	}
	for _, e := range l.entries {
		if e.Date == date && strings.HasPrefix(e.ID, prefix) {
			return e, true
		}
	}
	return models.LogEntry{}, false
}

func (l *Log) Entries() []models.LogEntry {
	return slices.Clone(l.entries)
}

func (l *Log) EntriesByDate(date models.Date) []models.LogEntry {
	var out []models.LogEntry
	for _, e := range l.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

func (l *Log) EntriesByMealType(date models.Date, mealType models.MealType) []models.LogEntry {
	var out []models.LogEntry
	for _, e := range l.entries {
		if e.Date == date && strings.EqualFold(string(e.MealType), string(mealType)) {
			out = append(out, e)
		}
	}
	return out
}

// EntriesUsingFood returns every entry, on any date, that logs foodID.
func (l *Log) EntriesUsingFood(foodID string) []models.LogEntry {
	var out []models.LogEntry
	for _, e := range l.entries {
		if e.FoodID == foodID {
			out = append(out, e)
		}
	}
	return out
}

// entryCalories resolves one entry for the totals. Entries whose food is
// gone count as zero. A cycle in the catalog is still an error.
func (l *Log) entryCalories(e models.LogEntry) (float64, error) {
	calories, err := e.TotalCalories(l.foods)
	if err == nil {
		return calories, nil
	}
	if errors.Is(err, models.ErrCycleDetected) {
		return 0, err
	}
	slog.Warn("log entry left out of totals", "id", e.ID, "food_id", e.FoodID, "error", err)
	return 0, nil
}

func (l *Log) sumCalories(entries []models.LogEntry) (float64, error) {
	var total float64
	for _, e := range entries {
		calories, err := l.entryCalories(e)
		if err != nil {
			return 0, err
		}
		total += calories
	}
	return total, nil
}

func (l *Log) TotalCaloriesForDate(date models.Date) (float64, error) {
	return l.sumCalories(l.EntriesByDate(date))
}

func (l *Log) CaloriesByMealType(date models.Date, mealType models.MealType) (float64, error) {
	return l.sumCalories(l.EntriesByMealType(date, mealType))
}

// DailyCalorieSummary totals calories for every date in the log.
func (l *Log) DailyCalorieSummary() (map[models.Date]float64, error) {
	summary := make(map[models.Date]float64)
	for _, e := range l.entries {
		calories, err := l.entryCalories(e)
		if err != nil {
			return nil, err
		}
		summary[e.Date] += calories
	}
	return summary, nil
}

// Records converts the log to its persisted form.
func (l *Log) Records() []models.EntryRecord {
	records := make([]models.EntryRecord, 0, len(l.entries))
	for _, e := range l.entries {
		records = append(records, models.EntryRecord{
			ID:       e.ID,
			Date:     e.Date.String(),
			Time:     e.Time.String(),
			MealType: string(e.MealType),
			FoodID:   e.FoodID,
			Servings: e.Servings,
		})
	}
	return records
}

// Load replaces the log with records, skipping any record that cannot be
// parsed or whose food is not in the catalog. It returns the number of
// skipped records and clears the undo history.
func (l *Log) Load(records []models.EntryRecord) int {
	l.entries = nil
	l.undo.clear()

	skipped := 0
	for _, rec := range records {
		entry, err := entryFromRecord(rec)
		if err != nil {
			slog.Warn("skipping malformed log entry", "id", rec.ID, "error", err)
			skipped++
			continue
		}
		if _, ok := l.foods.FoodByID(entry.FoodID); !ok {
			slog.Warn("skipping log entry for unknown food", "id", rec.ID, "food_id", rec.FoodID)
			skipped++
			continue
		}
		l.entries = append(l.entries, entry)
	}
	return skipped
}

func entryFromRecord(rec models.EntryRecord) (models.LogEntry, error) {
	date, err := models.ParseDate(rec.Date)
	if err != nil {
		return models.LogEntry{}, err
	}
	clock, err := models.ParseTimeOfDay(rec.Time)
	if err != nil {
		return models.LogEntry{}, err
	}
	return models.LogEntry{
		ID:       rec.ID,
		Date:     date,
		Time:     clock,
		MealType: models.MealType(rec.MealType),
		FoodID:   rec.FoodID,
		Servings: rec.Servings,
	}, nil
}
