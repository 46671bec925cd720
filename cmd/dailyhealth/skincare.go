package dailyhealth

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/catalog"
	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

var skincareDate string

var skincareCmd = &cobra.Command{
	Use:   "skincare",
	Short: "Track the morning and evening skincare routine",
}

var skincareToggleCmd = &cobra.Command{
	Use:       "toggle <morning|evening>",
	Short:     "Toggle completion of a routine",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(model.SkincareMorning), string(model.SkincareEvening)},
	RunE: func(cmd *cobra.Command, args []string) error {
		period := model.SkincarePeriod(strings.ToLower(strings.TrimSpace(args[0])))
		if period != model.SkincareMorning && period != model.SkincareEvening {
			return fmt.Errorf("invalid routine %q (use morning or evening)", args[0])
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, skincareDate)
			if err != nil {
				return err
			}
			next, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				return tracker.ToggleSkincare(e, period), nil
			})
			if err != nil {
				return err
			}
			done := next.Skincare.Morning
			if period == model.SkincareEvening {
				done = next.Skincare.Evening
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s routine on %s: %s\n", period, date, checkMark(done))
			return nil
		})
	},
}

var skincareRoutineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Show the routine steps and today's completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := catalog.Load()
		if err != nil {
			return err
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, skincareDate)
			if err != nil {
				return err
			}
			s := tr.EntryFor(date).Skincare
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Morning [%s]\n", checkMark(s.Morning))
			for _, step := range presets.Skincare.Morning {
				fmt.Fprintf(out, "  - %s\n", step)
			}
			fmt.Fprintf(out, "Evening [%s]\n", checkMark(s.Evening))
			for _, step := range presets.Skincare.Evening {
				fmt.Fprintf(out, "  - %s\n", step)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(skincareCmd)
	skincareCmd.AddCommand(skincareToggleCmd, skincareRoutineCmd)
	skincareToggleCmd.Flags().StringVar(&skincareDate, "date", "", "Date YYYY-MM-DD (default today)")
	skincareRoutineCmd.Flags().StringVar(&skincareDate, "date", "", "Date YYYY-MM-DD (default today)")
}
