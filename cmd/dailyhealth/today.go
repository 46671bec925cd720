package dailyhealth

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

var (
	todayRange string
	todayJSON  bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(sqldb *sql.DB, tr *service.Tracker) error {
			days, label, err := chartDays(sqldb, todayRange)
			if err != nil {
				return err
			}
			d := tr.Dashboard(days)
			if todayJSON {
				return printJSON(cmd, d)
			}
			printDashboard(cmd.OutOrStdout(), d, label)
			return nil
		})
	},
}

func printDashboard(w io.Writer, d service.Dashboard, rangeLabel string) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "안녕하세요, %s님\n", d.Profile.Name)
	fmt.Fprintf(w, "Date: %s\n", d.Date)

	if d.Dose != nil {
		fmt.Fprintf(w, "Mounjaro: %s", doseColor(d.Dose.State).Sprint(d.Dose.Label()))
		if d.Dose.State != tracker.DoseNoRecord {
			fmt.Fprintf(w, " (last dose %s, %d days ago)", d.Dose.LastDoseDate, d.Dose.DaysSince)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Calories: %d kcal\n", d.Calories)
	fmt.Fprintf(w, "Sleep: %d h\n", d.Entry.SleepHours)
	fmt.Fprintf(w, "Weight: %s kg\n", formatKg(d.Profile.CurrentWeight))
	fmt.Fprintf(w, "BMI: %.1f %s\n", d.BMI, bmiColor(d.BMICategory).Sprintf("(%s)", d.BMICategory.Label()))
	fmt.Fprintf(w, "Target: %s kg | remaining %.1f kg | %.0f%% of current weight\n",
		formatKg(d.Profile.TargetWeight), d.Progress.RemainingKg, d.Progress.Percent)

	fmt.Fprintf(w, "Skincare: morning %s | evening %s\n", checkMark(d.Entry.Skincare.Morning), checkMark(d.Entry.Skincare.Evening))
	fmt.Fprintf(w, "Meals: %d | Exercises: %d\n", len(d.Entry.Meals), len(d.Entry.Exercises))

	fmt.Fprintf(w, "Weight trend (%s, %d days):\n", rangeLabel, d.ChartDays)
	printChart(w, d.Chart)
}

func printChart(w io.Writer, points []tracker.ChartPoint) {
	if !tracker.ChartEligible(points) {
		fmt.Fprintln(w, "  not enough data yet (record weight on at least 2 days)")
		return
	}
	lo, hi := points[0].Weight, points[0].Weight
	for _, p := range points {
		lo = min(lo, p.Weight)
		hi = max(hi, p.Weight)
	}
	for _, p := range points {
		bar := 1
		if hi > lo {
			bar += int((p.Weight - lo) / (hi - lo) * 30)
		}
		fmt.Fprintf(w, "  %s %6.2f %s\n", p.Date, p.Weight, color.CyanString(strings.Repeat("#", bar)))
	}
}

func checkMark(done bool) string {
	if done {
		return color.GreenString("done")
	}
	return color.YellowString("todo")
}

func doseColor(state tracker.DoseState) *color.Color {
	switch state {
	case tracker.DoseOngoing:
		return color.New(color.FgGreen)
	case tracker.DoseRedose:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgHiBlack)
	}
}

func bmiColor(c tracker.BMICategory) *color.Color {
	switch c {
	case tracker.BMINormal:
		return color.New(color.FgGreen)
	case tracker.BMIUnderweight, tracker.BMIOverweight:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayRange, "range", "", "Chart range: 1m|2m|3m|4m or day count (default from config)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Print the dashboard as JSON")
}
