// internal/console/console.go
package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"diet-manager/internal/app"
	"diet-manager/internal/models"
)

const idPrefixLen = 4

// Console is the interactive menu front end of a session.
type Console struct {
	session *app.Session
	prompt  *Prompter
	out     io.Writer
	date    models.Date
	now     func() time.Time
}

func New(session *app.Session, in io.Reader, out io.Writer) *Console {
	return &Console{
		session: session,
		prompt:  NewPrompter(in, out),
		out:     out,
		date:    models.Today(),
		now:     time.Now,
	}
}

// SetDate changes the day the log menus work on.
func (c *Console) SetDate(d models.Date) {
	c.date = d
}

// Run shows the main menu until the user exits or input ends. Data is saved
// on the way out in both cases.
func (c *Console) Run() error {
	c.printf("Welcome to YADA - Yet Another Diet Assistant\n")
	c.printf("Current date: %s\n", c.date)

	err := c.mainMenu()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	c.saveData()
	c.printf("Thank you for using YADA. Goodbye!\n")
	return nil
}

func (c *Console) mainMenu() error {
	for {
		c.printf("\n===== MAIN MENU =====\n")
		c.printf("1. Manage Foods\n")
		c.printf("2. Manage Daily Log\n")
		c.printf("3. Manage User Profile\n")
		c.printf("4. View Calories Summary\n")
		c.printf("5. Change Current Date (Current: %s)\n", c.date)
		c.printf("6. Save Data\n")
		c.printf("0. Exit\n")

		choice, err := c.prompt.Int("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.manageFoods()
		case 2:
			err = c.manageDailyLog()
		case 3:
			err = c.manageProfile()
		case 4:
			err = c.viewCaloriesSummary()
		case 5:
			err = c.changeCurrentDate()
		case 6:
			c.saveData()
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

func (c *Console) viewCaloriesSummary() error {
	c.printf("\n===== CALORIES SUMMARY =====\n")

	summary, err := c.session.Summary(c.date)
	if err != nil {
		c.printf("Could not compute calories: %v\n", err)
		return nil
	}

	c.printf("Date: %s\n", summary.Date)
	c.printf("Calories Consumed: %.1f\n", summary.Consumed)
	c.printf("Target Calories: %.1f\n", summary.Target)
	c.printf("Remaining Calories: %.1f\n", summary.Remaining)

	c.printf("\nBreakdown by Meal Type:\n")
	c.printf("%-15s %-10s\n", "Meal Type", "Calories")
	c.printf("%s\n", strings.Repeat("-", 25))
	for _, meal := range summary.ByMeal {
		c.printf("%-15s %-10.1f\n", meal.MealType, meal.Calories)
	}

	weekly, err := c.prompt.Confirm("\nWould you like to see a weekly summary? (y/n) ")
	if err != nil || !weekly {
		return err
	}

	days, err := c.session.WeeklySummary(c.date)
	if err != nil {
		c.printf("Could not compute weekly summary: %v\n", err)
		return nil
	}
	c.printf("\n===== WEEKLY CALORIES SUMMARY =====\n")
	c.printf("%-15s %-15s %-15s %-15s\n", "Date", "Consumed", "Target", "Difference")
	c.printf("%s\n", strings.Repeat("-", 60))
	for _, day := range days {
		c.printf("%-15s %-15.1f %-15.1f %-15.1f\n", day.Date, day.Consumed, day.Target, day.Remaining)
	}
	return nil
}

func (c *Console) changeCurrentDate() error {
	c.printf("\n===== CHANGE CURRENT DATE =====\n")
	c.printf("Current date: %s\n", c.date)

	answer, err := c.prompt.String("Enter new date (yyyy-MM-dd) or press Enter to cancel: ")
	if err != nil {
		return err
	}
	if answer == "" {
		c.printf("Date change cancelled.\n")
		return nil
	}

	date, err := models.ParseDate(answer)
	if err != nil {
		c.printf("Invalid date format. Current date remains unchanged.\n")
		return nil
	}
	c.date = date
	c.printf("Current date changed to: %s\n", c.date)
	return nil
}

func (c *Console) saveData() {
	if err := c.session.Save(); err != nil {
		slog.Error("failed to save data", "error", err)
		c.printf("Some data could not be saved: %v\n", err)
		return
	}
	c.printf("All data saved successfully.\n")
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func shortID(id string) string {
	if len(id) <= idPrefixLen {
		return id
	}
	return id[:idPrefixLen]
}
