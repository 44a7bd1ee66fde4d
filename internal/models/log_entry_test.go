package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"", "2024-13-01", "29/02/2024", "2023-02-29"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	t.Parallel()

	d := Date{Year: 2024, Month: time.December, Day: 31}
	next := d.AddDays(1)
	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 1}, next)
	assert.Equal(t, d, next.AddDays(-1))
	assert.True(t, d.Before(next))
	assert.False(t, next.Before(d))
}

func TestDate_Text(t *testing.T) {
	t.Parallel()

	d := Date{Year: 2024, Month: time.March, Day: 5}
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", string(text))

	var back Date
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, d, back)
	assert.Error(t, back.UnmarshalText([]byte("March 5")))
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:30", want: TimeOfDay{Hour: 8, Minute: 30}},
		{in: "23:59:58", want: TimeOfDay{Hour: 23, Minute: 59}},
		{in: "00:00", want: TimeOfDay{}},
		{in: "24:00", wantErr: true},
		{in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "07:05", TimeOfDay{Hour: 7, Minute: 5}.String())
}

func TestLogEntry_TotalCalories(t *testing.T) {
	t.Parallel()

	idx := foodIndex{}.add(NewBasicFood("oats", "Oats", nil, 150))

	entry := LogEntry{ID: "e1", FoodID: "oats", Servings: 1.5}
	got, err := entry.TotalCalories(idx)
	require.NoError(t, err)
	assert.Equal(t, 225.0, got)

	entry.FoodID = "missing"
	_, err = entry.TotalCalories(idx)
	assert.ErrorIs(t, err, ErrFoodNotFound)
}
