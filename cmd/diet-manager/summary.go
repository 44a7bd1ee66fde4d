// cmd/diet-manager/summary.go
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"diet-manager/internal/app"
	"diet-manager/internal/models"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the calorie summary for a day",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().String("date", "", "day to summarize (YYYY-MM-DD), defaults to today")
	summaryCmd.Flags().Bool("week", false, "also print the seven days ending on the date")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	date := models.Today()
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			return err
		}
		date = parsed
	}
	week, _ := cmd.Flags().GetBool("week")

	session, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	return printSummary(cmd.OutOrStdout(), session, date, week)
}

func printSummary(w io.Writer, session *app.Session, date models.Date, week bool) error {
	summary, err := session.Summary(date)
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}

	fmt.Fprintf(w, "Date:      %s\n", summary.Date)
	fmt.Fprintf(w, "Consumed:  %.1f\n", summary.Consumed)
	fmt.Fprintf(w, "Target:    %.1f (%s)\n", summary.Target, session.Profile.Method)
	fmt.Fprintf(w, "Remaining: %.1f\n", summary.Remaining)
	for _, meal := range summary.ByMeal {
		fmt.Fprintf(w, "  %-10s %.1f\n", meal.MealType, meal.Calories)
	}

	if !week {
		return nil
	}
	days, err := session.WeeklySummary(date)
	if err != nil {
		return fmt.Errorf("failed to compute weekly summary: %w", err)
	}
	fmt.Fprintln(w)
	for _, day := range days {
		fmt.Fprintf(w, "%s  %8.1f / %.1f\n", day.Date, day.Consumed, day.Target)
	}
	return nil
}
