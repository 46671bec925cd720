package dailyhealth

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage meals",
}

var (
	mealType     string
	mealDate     string
	mealCalories int
	mealListAll  bool
)

var mealAddCmd = &cobra.Command{
	Use:   "add <description>...",
	Short: "Add meal items; calories are estimated by the nutrition analyzer unless --calories is set",
	Long: "Each argument is one food description. Without --calories the description is sent to the " +
		"nutrition analyzer, which fills in a name and calorie estimate.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseMealType(mealType)
		if err != nil {
			return err
		}
		manual := cmd.Flags().Changed("calories")
		if manual && mealCalories < 0 {
			return fmt.Errorf("--calories must be >= 0")
		}
		return withTracker(func(sqldb *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, mealDate)
			if err != nil {
				return err
			}
			if manual {
				item, err := service.AddFoodManual(tr, date, t, strings.Join(args, " "), mealCalories)
				if err != nil {
					return err
				}
				printMealAdded(cmd, date, item)
				return nil
			}

			analyzer, err := newNutritionAnalyzer(sqldb)
			if err != nil {
				return err
			}
			nutrition := service.NewNutrition(analyzer)
			for _, desc := range args {
				ctx, cancel := timeoutContext(cmd)
				item, err := nutrition.AddFood(ctx, tr, date, t, desc)
				cancel()
				if err != nil {
					return err
				}
				printMealAdded(cmd, date, item)
			}
			return nil
		})
	},
}

func printMealAdded(cmd *cobra.Command, date string, item model.FoodEntry) {
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s %s: %d kcal (id %s)\n", item.Name, date, item.Type.Label(), item.Calories, item.ID)
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter model.MealType
		if !mealListAll {
			t, err := parseMealType(mealType)
			if err != nil {
				return err
			}
			filter = t
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, mealDate)
			if err != nil {
				return err
			}
			entry := tr.EntryFor(date)
			meals := entry.Meals
			if filter != "" {
				meals = tracker.MealsOfType(entry, filter)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTYPE\tNAME\tKCAL")
			total := 0
			for _, m := range meals {
				total += m.Calories
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", m.ID, m.Type.Label(), m.Name, m.Calories)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d kcal\n", total)
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, mealDate)
			if err != nil {
				return err
			}
			if _, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				next, ok := tracker.DeleteMeal(e, args[0])
				if !ok {
					return e, fmt.Errorf("meal %s not found on %s", args[0], date)
				}
				return next, nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)

	mealAddCmd.Flags().StringVar(&mealType, "type", "breakfast", "Meal type: breakfast|lunch|dinner|snack")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "Record calories manually and skip the analyzer")
	mealListCmd.Flags().StringVar(&mealType, "type", "breakfast", "Meal type: breakfast|lunch|dinner|snack")
	mealListCmd.Flags().BoolVar(&mealListAll, "all", false, "List every meal type")
	mealListCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealDeleteCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
}
