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

var doseDate string

var doseCmd = &cobra.Command{
	Use:   "dose",
	Short: "Track Mounjaro doses",
}

var doseToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle whether a dose was taken on a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, doseDate)
			if err != nil {
				return err
			}
			next, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				return tracker.SetDose(e, !e.MounjaroDose), nil
			})
			if err != nil {
				return err
			}
			state := "not taken"
			if next.MounjaroDose {
				state = "taken"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dose on %s: %s\n", date, state)
			return nil
		})
	},
}

var doseNotesCmd = &cobra.Command{
	Use:   "notes <text>...",
	Short: "Record side effects or notes for a day",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes := strings.Join(args, " ")
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, doseDate)
			if err != nil {
				return err
			}
			if _, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				return tracker.SetDoseNotes(e, notes), nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved notes for %s\n", date)
			return nil
		})
	},
}

var doseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show days since the last dose",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			status := tracker.DosingInterval(tr.History(), tr.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", doseColor(status.State).Sprint(status.Label()))
			if status.State != tracker.DoseNoRecord {
				fmt.Fprintf(out, "Last dose: %s (%d days ago)\n", status.LastDoseDate, status.DaysSince)
			}
			if notes := tr.Active().MounjaroNotes; notes != "" {
				fmt.Fprintf(out, "Today's notes: %s\n", notes)
			}
			if !tr.Profile().MounjaroActive {
				fmt.Fprintln(out, "Mounjaro tracking is off in the profile; the dashboard hides this card.")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doseCmd)
	doseCmd.AddCommand(doseToggleCmd, doseNotesCmd, doseStatusCmd)
	doseToggleCmd.Flags().StringVar(&doseDate, "date", "", "Date YYYY-MM-DD (default today)")
	doseNotesCmd.Flags().StringVar(&doseDate, "date", "", "Date YYYY-MM-DD (default today)")
}
