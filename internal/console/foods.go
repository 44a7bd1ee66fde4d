// internal/console/foods.go
package console

import (
	"strings"

	"diet-manager/internal/models"
)

func (c *Console) manageFoods() error {
	for {
		c.printf("\n===== FOOD MANAGEMENT =====\n")
		c.printf("1. View All Foods\n")
		c.printf("2. Search Foods\n")
		c.printf("3. Add Basic Food\n")
		c.printf("4. Create Composite Food\n")
		c.printf("5. Delete Food\n")
		c.printf("6. Update Basic Food Calories\n")
		c.printf("0. Back to Main Menu\n")

		choice, err := c.prompt.Int("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			c.viewAllFoods()
		case 2:
			err = c.searchFoods()
		case 3:
			err = c.addBasicFood()
		case 4:
			err = c.createCompositeFood()
		case 5:
			err = c.deleteFood()
		case 6:
			err = c.updateBasicFood()
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

func (c *Console) printFoods(title string, foods []models.Food) {
	c.printf("\n===== %s =====\n", title)
	c.printf("%-5s %-30s %-15s %-50s\n", "ID", "Name", "Calories", "Keywords")
	c.printf("%s\n", strings.Repeat("-", 100))
	for _, food := range foods {
		calories, err := food.CaloriesPerServing(c.session.Catalog)
		caloriesText := "n/a"
		if err == nil {
			caloriesText = formatFloat(calories)
		}
		c.printf("%-5s %-30s %-15s %-50s\n",
			shortID(food.ID()), food.Name(), caloriesText, strings.Join(food.Keywords(), ", "))
	}
}

func (c *Console) viewAllFoods() {
	foods := c.session.Catalog.Foods()
	if len(foods) == 0 {
		c.printf("No foods found in the database.\n")
		return
	}
	c.printFoods("ALL FOODS", foods)
}

func (c *Console) searchFoods() error {
	c.printf("\n===== SEARCH FOODS =====\n")
	c.printf("1. Search by Any Keyword\n")
	c.printf("2. Search by All Keywords\n")

	searchType, err := c.prompt.Int("Enter your choice: ")
	if err != nil {
		return err
	}
	if searchType < 1 || searchType > 2 {
		c.printf("Invalid choice. Returning to menu.\n")
		return nil
	}

	keywords, err := c.prompt.Keywords("Enter search keywords (comma separated): ")
	if err != nil {
		return err
	}

	var results []models.Food
	if searchType == 1 {
		results = c.session.Catalog.SearchByAnyKeyword(keywords)
	} else {
		results = c.session.Catalog.SearchByAllKeywords(keywords)
	}

	if len(results) == 0 {
		c.printf("No foods found matching your search criteria.\n")
		return nil
	}
	c.printFoods("SEARCH RESULTS", results)
	return nil
}

func (c *Console) addBasicFood() error {
	c.printf("\n===== ADD BASIC FOOD =====\n")
	name, err := c.prompt.String("Enter food name: ")
	if err != nil {
		return err
	}
	keywords, err := c.prompt.Keywords("Enter keywords (comma separated): ")
	if err != nil {
		return err
	}
	calories, err := c.prompt.Float("Enter calories per serving: ")
	if err != nil {
		return err
	}

	food := c.session.Catalog.AddBasicFood(name, keywords, calories)
	c.printf("Basic food added successfully: %s\n", food.Name())
	return nil
}

func (c *Console) createCompositeFood() error {
	c.printf("\n===== CREATE COMPOSITE FOOD =====\n")
	if c.session.Catalog.Len() == 0 {
		c.printf("Add some basic foods first.\n")
		return nil
	}

	name, err := c.prompt.String("Enter composite food name: ")
	if err != nil {
		return err
	}
	keywords, err := c.prompt.Keywords("Enter keywords (comma separated): ")
	if err != nil {
		return err
	}

	var components []models.FoodComponent
	for {
		c.viewAllFoods()

		prefix, err := c.prompt.String("Enter food ID to add (first 4 characters): ")
		if err != nil {
			return err
		}
		food, ok := c.session.Catalog.FoodByIDPrefix(prefix)
		if !ok {
			c.printf("Food not found. Please try again.\n")
			continue
		}

		servings, err := c.prompt.Float("Enter number of servings: ")
		if err != nil {
			return err
		}
		components = append(components, models.FoodComponent{FoodID: food.ID(), Servings: servings})

		more, err := c.prompt.Confirm("Add another component? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	composite, err := c.session.Catalog.AddCompositeFood(name, keywords, components)
	if err != nil {
		c.printf("Could not create composite food: %v\n", err)
		return nil
	}
	c.printf("Composite food added successfully: %s\n", composite.Name())
	return nil
}

func (c *Console) deleteFood() error {
	c.printf("\n===== DELETE FOOD =====\n")
	c.viewAllFoods()

	prefix, err := c.prompt.String("Enter food ID to delete (first 4 characters): ")
	if err != nil {
		return err
	}
	food, ok := c.session.Catalog.FoodByIDPrefix(prefix)
	if !ok {
		c.printf("Food not found. Please try again.\n")
		return nil
	}

	if users := c.session.Catalog.Referrers(food.ID()); len(users) > 0 {
		names := make([]string, 0, len(users))
		for _, u := range users {
			names = append(names, u.Name())
		}
		c.printf("Warning: %s is used by %s.\n", food.Name(), strings.Join(names, ", "))
	}
	if n := len(c.session.Log.EntriesUsingFood(food.ID())); n > 0 {
		c.printf("Warning: %d log entries use %s. Their calories will no longer be counted.\n", n, food.Name())
	}

	confirm, err := c.prompt.Confirm("Are you sure you want to delete " + food.Name() + "? (y/n): ")
	if err != nil {
		return err
	}
	if !confirm {
		c.printf("Deletion cancelled.\n")
		return nil
	}

	if c.session.Catalog.Delete(food.ID()) {
		c.printf("Food deleted successfully.\n")
	} else {
		c.printf("Failed to delete food.\n")
	}
	return nil
}

func (c *Console) updateBasicFood() error {
	c.printf("\n===== UPDATE BASIC FOOD =====\n")
	c.viewAllFoods()

	prefix, err := c.prompt.String("Enter food ID to update (first 4 characters): ")
	if err != nil {
		return err
	}
	food, ok := c.session.Catalog.FoodByIDPrefix(prefix)
	if !ok || food.IsComposite() {
		c.printf("Basic food not found. Please try again.\n")
		return nil
	}

	calories, err := c.prompt.Float("Enter new calories per serving: ")
	if err != nil {
		return err
	}
	c.session.Catalog.UpdateBasicCalories(food.ID(), calories)
	c.printf("Calories for %s updated.\n", food.Name())
	return nil
}
