// internal/models/profile.go
package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CalorieMethod string

const (
	HarrisBenedict CalorieMethod = "Harris-Benedict"
	MifflinStJeor  CalorieMethod = "Mifflin-St Jeor"
)

var CalorieMethods = []CalorieMethod{HarrisBenedict, MifflinStJeor}

type UserProfile struct {
	Name          string        `yaml:"name" validate:"required"`
	Sex           string        `yaml:"sex"`
	Age           int           `yaml:"age" validate:"gte=0"`
	HeightCM      float64       `yaml:"height_cm" validate:"gte=0"`
	WeightKG      float64       `yaml:"weight_kg" validate:"gte=0"`
	ActivityLevel int           `yaml:"activity_level" validate:"gte=0,lte=10"`
	LastUpdated   Date          `yaml:"last_updated"`
	Method        CalorieMethod `yaml:"method" validate:"calorie_method"`
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("calorie_method", func(fl validator.FieldLevel) bool {
		return slices.Contains(CalorieMethods, CalorieMethod(fl.Field().String()))
	})
	return v
}

// DefaultProfile is used until the user edits their own.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:          "Default User",
		Sex:           "Male",
		Age:           30,
		HeightCM:      175,
		WeightKG:      70,
		ActivityLevel: 5,
		LastUpdated:   Today(),
		Method:        HarrisBenedict,
	}
}

func (p UserProfile) Validate() error {
	if err := profileValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

func (p UserProfile) isMale() bool {
	return strings.EqualFold(p.Sex, "male")
}

// BMR returns the basal metabolic rate for the selected method. Unknown
// methods use Harris-Benedict.
func (p UserProfile) BMR() float64 {
	w, h, a := p.WeightKG, p.HeightCM, float64(p.Age)
	if p.Method == MifflinStJeor {
		if p.isMale() {
			return 10*w + 6.25*h - 5*a + 5
		}
		return 10*w + 6.25*h - 5*a - 161
	}
	if p.isMale() {
		return 66.47 + 13.75*w + 5.003*h - 6.755*a
	}
	return 655.1 + 9.563*w + 1.85*h - 4.676*a
}

// ActivityFactor maps the 0-10 activity scale onto the usual multipliers.
func (p UserProfile) ActivityFactor() float64 {
	switch {
	case p.ActivityLevel <= 1:
		return 1.2
	case p.ActivityLevel <= 3:
		return 1.375
	case p.ActivityLevel <= 5:
		return 1.55
	case p.ActivityLevel <= 7:
		return 1.725
	default:
		return 1.9
	}
}

func (p UserProfile) DailyCalorieNeeds() float64 {
	return p.BMR() * p.ActivityFactor()
}
