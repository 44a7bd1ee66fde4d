// internal/console/daily_log.go
package console

import (
	"strconv"
	"strings"

	"diet-manager/internal/models"
)

func (c *Console) manageDailyLog() error {
	for {
		c.printf("\n===== DAILY LOG MANAGEMENT (%s) =====\n", c.date)
		c.printf("1. View Today's Log\n")
		c.printf("2. Add Food to Log\n")
		c.printf("3. Delete Entry from Log\n")
		c.printf("4. Undo Last Action\n")
		c.printf("5. Edit Entry\n")
		c.printf("0. Back to Main Menu\n")

		choice, err := c.prompt.Int("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			c.viewDailyLog()
		case 2:
			err = c.addFoodToLog()
		case 3:
			err = c.deleteEntryFromLog()
		case 4:
			c.undoLastAction()
		case 5:
			err = c.editEntry()
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

// printEntries prints the day's entries and returns their calorie total.
func (c *Console) printEntries(title string, entries []models.LogEntry) float64 {
	c.printf("\n===== %s =====\n", title)
	c.printf("%-5s %-10s %-15s %-30s %-10s %-10s\n", "ID", "Time", "Meal Type", "Food", "Servings", "Calories")
	c.printf("%s\n", strings.Repeat("-", 85))

	var total float64
	for _, entry := range entries {
		name := "(deleted food)"
		if food, ok := c.session.Catalog.FoodByID(entry.FoodID); ok {
			name = food.Name()
		}
		caloriesText := "n/a"
		if calories, err := entry.TotalCalories(c.session.Catalog); err == nil {
			caloriesText = formatFloat(calories)
			total += calories
		}
		c.printf("%-5s %-10s %-15s %-30s %-10.1f %-10s\n",
			shortID(entry.ID), entry.Time, entry.MealType, name, entry.Servings, caloriesText)
	}
	return total
}

func (c *Console) viewDailyLog() {
	entries := c.session.Log.EntriesByDate(c.date)
	if len(entries) == 0 {
		c.printf("No entries found for %s\n", c.date)
		return
	}

	total := c.printEntries("FOOD LOG FOR "+c.date.String(), entries)
	target := c.session.Profile.DailyCalorieNeeds()

	c.printf("%s\n", strings.Repeat("-", 85))
	c.printf("Total Calories: %.1f\n", total)
	c.printf("Target Calories: %.1f\n", target)
	c.printf("Remaining Calories: %.1f\n", target-total)
}

// chooseFood lists or searches the catalog and asks for an id prefix.
func (c *Console) chooseFood() (models.Food, bool, error) {
	c.printf("1. View All Foods\n")
	c.printf("2. Search Foods\n")
	choice, err := c.prompt.Int("Enter your choice: ")
	if err != nil {
		return nil, false, err
	}

	switch choice {
	case 1:
		c.viewAllFoods()
	case 2:
		if err := c.searchFoods(); err != nil {
			return nil, false, err
		}
	default:
		c.printf("Invalid choice. Returning to menu.\n")
		return nil, false, nil
	}

	prefix, err := c.prompt.String("Enter food ID to add (first 4 characters): ")
	if err != nil {
		return nil, false, err
	}
	food, ok := c.session.Catalog.FoodByIDPrefix(prefix)
	if !ok {
		c.printf("Food not found. Please try again.\n")
	}
	return food, ok, nil
}

func (c *Console) chooseMealType() (models.MealType, error) {
	c.printf("Select meal type:\n")
	for i, mealType := range models.MealTypes[:4] {
		c.printf("%d. %s\n", i+1, mealType)
	}
	choice, err := c.prompt.Int("Enter your choice: ")
	if err != nil {
		return "", err
	}
	if choice < 1 || choice > 4 {
		c.printf("Invalid choice. Using 'Other' as meal type.\n")
		return models.Other, nil
	}
	return models.MealTypes[choice-1], nil
}

// chooseTime returns fallback when the answer is empty or unparsable.
func (c *Console) chooseTime(prompt string, fallback models.TimeOfDay) (models.TimeOfDay, error) {
	answer, err := c.prompt.String(prompt)
	if err != nil {
		return models.TimeOfDay{}, err
	}
	if answer == "" {
		return fallback, nil
	}
	clock, err := models.ParseTimeOfDay(answer)
	if err != nil {
		c.printf("Invalid time format. Using %s.\n", fallback)
		return fallback, nil
	}
	return clock, nil
}

func (c *Console) addFoodToLog() error {
	c.printf("\n===== ADD FOOD TO LOG =====\n")

	food, ok, err := c.chooseFood()
	if err != nil || !ok {
		return err
	}
	servings, err := c.prompt.Float("Enter number of servings: ")
	if err != nil {
		return err
	}
	mealType, err := c.chooseMealType()
	if err != nil {
		return err
	}
	clock, err := c.chooseTime("Enter time (HH:mm) or press Enter for current time: ", models.ClockOf(c.now()))
	if err != nil {
		return err
	}

	if _, ok := c.session.Log.AddEntry(c.date, clock, mealType, food.ID(), servings); !ok {
		c.printf("Food not found. Please try again.\n")
		return nil
	}
	c.printf("Food added to log successfully.\n")
	return nil
}

func (c *Console) pickEntry(title, prompt string) (models.LogEntry, bool, error) {
	entries := c.session.Log.EntriesByDate(c.date)
	if len(entries) == 0 {
		c.printf("No entries found for %s\n", c.date)
		return models.LogEntry{}, false, nil
	}
	c.printEntries(title, entries)

	prefix, err := c.prompt.String(prompt)
	if err != nil {
		return models.LogEntry{}, false, err
	}
	entry, ok := c.session.Log.EntryByIDPrefix(c.date, prefix)
	if !ok {
		c.printf("Entry not found. Please try again.\n")
	}
	return entry, ok, nil
}

func (c *Console) deleteEntryFromLog() error {
	entry, ok, err := c.pickEntry("DELETE ENTRY FROM LOG", "Enter entry ID to delete (first 4 characters): ")
	if err != nil || !ok {
		return err
	}

	if c.session.Log.DeleteEntry(entry.ID) {
		c.printf("Entry deleted successfully.\n")
	} else {
		c.printf("Failed to delete entry.\n")
	}
	return nil
}

func (c *Console) editEntry() error {
	entry, ok, err := c.pickEntry("EDIT LOG ENTRY", "Enter entry ID to edit (first 4 characters): ")
	if err != nil || !ok {
		return err
	}

	foodID := entry.FoodID
	change, err := c.prompt.Confirm("Change food? (y/n): ")
	if err != nil {
		return err
	}
	if change {
		food, ok, err := c.chooseFood()
		if err != nil || !ok {
			return err
		}
		foodID = food.ID()
	}

	servings := entry.Servings
	answer, err := c.prompt.String("Enter number of servings (current: " + formatFloat(entry.Servings) + "): ")
	if err != nil {
		return err
	}
	if answer != "" {
		if v, err := strconv.ParseFloat(answer, 64); err == nil {
			servings = v
		} else {
			c.printf("Invalid servings. Keeping current value.\n")
		}
	}

	mealType := entry.MealType
	change, err = c.prompt.Confirm("Change meal type (current: " + string(entry.MealType) + ")? (y/n): ")
	if err != nil {
		return err
	}
	if change {
		if mealType, err = c.chooseMealType(); err != nil {
			return err
		}
	}

	clock, err := c.chooseTime("Enter time (HH:mm) or press Enter to keep "+entry.Time.String()+": ", entry.Time)
	if err != nil {
		return err
	}

	if c.session.Log.UpdateEntry(entry.ID, entry.Date, clock, mealType, foodID, servings) {
		c.printf("Entry updated successfully.\n")
	} else {
		c.printf("Failed to update entry.\n")
	}
	return nil
}

func (c *Console) undoLastAction() {
	if !c.session.Log.CanUndo() {
		c.printf("No actions to undo.\n")
		return
	}
	if c.session.Log.Undo() {
		c.printf("Last action undone successfully.\n")
	} else {
		c.printf("Failed to undo last action.\n")
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
