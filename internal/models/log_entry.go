// internal/models/log_entry.go
package models

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
	Other     MealType = "Other"
)

// MealTypes lists the meal types offered by the console, in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack, Other}

// Date is a calendar day. It is comparable and usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func Today() Date {
	return DateOf(time.Now())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a 24-hour clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay accepts HH:mm, and HH:mm:ss with the seconds dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		var secErr error
		if t, secErr = time.Parse("15:04:05", s); secErr != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
		}
	}
	return ClockOf(t), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// LogEntry records one consumption event. It is a plain value; copies never
// share state with the log that produced them.
type LogEntry struct {
	ID       string
	Date     Date
	Time     TimeOfDay
	MealType MealType
	FoodID   string
	Servings float64
}

// TotalCalories resolves the entry's food and scales it by servings.
func (e LogEntry) TotalCalories(r Resolver) (float64, error) {
	food, ok := r.FoodByID(e.FoodID)
	if !ok {
		return 0, fmt.Errorf("log entry %s: food %s: %w", e.ID, e.FoodID, ErrFoodNotFound)
	}
	calories, err := food.CaloriesPerServing(r)
	if err != nil {
		return 0, fmt.Errorf("log entry %s: %w", e.ID, err)
	}
	return calories * e.Servings, nil
}
