// internal/console/profile.go
package console

import (
	"fmt"
	"strconv"

	"diet-manager/internal/models"
)

func (c *Console) manageProfile() error {
	for {
		c.printf("\n===== USER PROFILE MANAGEMENT =====\n")
		c.printf("1. View Profile\n")
		c.printf("2. Update Profile\n")
		c.printf("3. Change Calorie Calculation Method\n")
		c.printf("0. Back to Main Menu\n")

		choice, err := c.prompt.Int("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			c.viewProfile()
		case 2:
			err = c.updateProfile()
		case 3:
			err = c.changeCalorieMethod()
		case 0:
			return nil
		default:
			c.printf("Invalid choice. Please try again.\n")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) viewProfile() {
	p := c.session.Profile
	c.printf("\n===== USER PROFILE =====\n")
	c.printf("Name: %s\n", p.Name)
	c.printf("Sex: %s\n", p.Sex)
	c.printf("Age: %d\n", p.Age)
	c.printf("Height: %s cm\n", formatFloat(p.HeightCM))
	c.printf("Weight: %s kg\n", formatFloat(p.WeightKG))
	c.printf("Activity Level (0-10): %d\n", p.ActivityLevel)
	c.printf("Calorie Calculation Method: %s\n", p.Method)
	c.printf("Last Updated: %s\n", p.LastUpdated)
	c.printf("Daily Calorie Needs: %.1f\n", p.DailyCalorieNeeds())
}

// updateProfile asks for each field in turn. Empty or malformed answers
// keep the current value.
func (c *Console) updateProfile() error {
	c.printf("\n===== UPDATE USER PROFILE =====\n")
	p := c.session.Profile

	ask := func(label string, current any) (string, error) {
		return c.prompt.String(fmt.Sprintf("Enter %s (current: %v): ", label, current))
	}

	answer, err := ask("name", p.Name)
	if err != nil {
		return err
	}
	if answer != "" {
		p.Name = answer
	}

	if answer, err = ask("sex (Male/Female)", p.Sex); err != nil {
		return err
	}
	if answer != "" {
		p.Sex = answer
	}

	if answer, err = ask("age", p.Age); err != nil {
		return err
	}
	if answer != "" {
		if age, err := strconv.Atoi(answer); err == nil {
			p.Age = age
		} else {
			c.printf("Invalid age format. Keeping current value.\n")
		}
	}

	if answer, err = ask("height in cm", p.HeightCM); err != nil {
		return err
	}
	if answer != "" {
		if height, err := strconv.ParseFloat(answer, 64); err == nil {
			p.HeightCM = height
		} else {
			c.printf("Invalid height format. Keeping current value.\n")
		}
	}

	if answer, err = ask("weight in kg", p.WeightKG); err != nil {
		return err
	}
	if answer != "" {
		if weight, err := strconv.ParseFloat(answer, 64); err == nil {
			p.WeightKG = weight
		} else {
			c.printf("Invalid weight format. Keeping current value.\n")
		}
	}

	if answer, err = ask("activity level (0-10)", p.ActivityLevel); err != nil {
		return err
	}
	if answer != "" {
		level, err := strconv.Atoi(answer)
		switch {
		case err != nil:
			c.printf("Invalid activity level format. Keeping current value.\n")
		case level < 0 || level > 10:
			c.printf("Activity level must be between 0 and 10. Keeping current value.\n")
		default:
			p.ActivityLevel = level
		}
	}

	if err := p.Validate(); err != nil {
		c.printf("Profile not updated: %v\n", err)
		return nil
	}
	p.LastUpdated = models.DateOf(c.now())
	c.session.Profile = p
	c.printf("User profile updated successfully.\n")
	return nil
}

func (c *Console) changeCalorieMethod() error {
	c.printf("\n===== CHANGE CALORIE CALCULATION METHOD =====\n")
	c.printf("Current method: %s\n", c.session.Profile.Method)
	c.printf("Available methods:\n")
	for i, method := range models.CalorieMethods {
		c.printf("%d. %s\n", i+1, method)
	}

	choice, err := c.prompt.Int("Enter your choice: ")
	if err != nil {
		return err
	}
	if choice < 1 || choice > len(models.CalorieMethods) {
		c.printf("Invalid choice. Keeping current method.\n")
		return nil
	}

	method := models.CalorieMethods[choice-1]
	c.session.Profile.Method = method
	c.printf("Calorie calculation method changed to %s.\n", method)
	return nil
}
