package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_BMR(t *testing.T) {
	t.Parallel()

	base := UserProfile{Name: "Test", Age: 30, HeightCM: 175, WeightKG: 70}

	tests := []struct {
		name   string
		sex    string
		method CalorieMethod
		want   float64
	}{
		{name: "harris-benedict male", sex: "Male", method: HarrisBenedict, want: 66.47 + 13.75*70 + 5.003*175 - 6.755*30},
		{name: "harris-benedict female", sex: "Female", method: HarrisBenedict, want: 655.1 + 9.563*70 + 1.85*175 - 4.676*30},
		{name: "mifflin male", sex: "male", method: MifflinStJeor, want: 10*70 + 6.25*175 - 5*30 + 5},
		{name: "mifflin female", sex: "Female", method: MifflinStJeor, want: 10*70 + 6.25*175 - 5*30 - 161},
		{name: "unknown sex uses female formula", sex: "unspecified", method: MifflinStJeor, want: 10*70 + 6.25*175 - 5*30 - 161},
		{name: "unknown method uses harris-benedict", sex: "MALE", method: "Katch-McArdle", want: 66.47 + 13.75*70 + 5.003*175 - 6.755*30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.Sex = tt.sex
			p.Method = tt.method
			assert.InDelta(t, tt.want, p.BMR(), 1e-9)
		})
	}
}

func TestUserProfile_ActivityFactor(t *testing.T) {
	t.Parallel()

	want := map[int]float64{
		0: 1.2, 1: 1.2,
		2: 1.375, 3: 1.375,
		4: 1.55, 5: 1.55,
		6: 1.725, 7: 1.725,
		8: 1.9, 9: 1.9, 10: 1.9,
	}
	for level, factor := range want {
		p := UserProfile{ActivityLevel: level}
		assert.Equal(t, factor, p.ActivityFactor(), "level %d", level)
	}
}

func TestUserProfile_DailyCalorieNeeds(t *testing.T) {
	t.Parallel()

	p := DefaultProfile()
	assert.InDelta(t, p.BMR()*1.55, p.DailyCalorieNeeds(), 1e-9)
	assert.InDelta(t, 2637.86, p.DailyCalorieNeeds(), 0.01)
}

func TestUserProfile_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultProfile().Validate())

	tests := []struct {
		name   string
		modify func(p *UserProfile)
	}{
		{name: "missing name", modify: func(p *UserProfile) { p.Name = "" }},
		{name: "negative age", modify: func(p *UserProfile) { p.Age = -1 }},
		{name: "negative weight", modify: func(p *UserProfile) { p.WeightKG = -5 }},
		{name: "activity too high", modify: func(p *UserProfile) { p.ActivityLevel = 11 }},
		{name: "unknown method", modify: func(p *UserProfile) { p.Method = "Guesswork" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.modify(&p)
			assert.Error(t, p.Validate())
		})
	}
}
