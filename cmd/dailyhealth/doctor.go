package dailyhealth

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/mallkiller3-ctrl/daily-health/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			report, err := service.RunDoctor(tr, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Log entries: %d\n", report.Entries)
			fmt.Fprintf(out, "Duplicate dates: %d\n", report.DuplicateDates)
			fmt.Fprintf(out, "Unsorted history: %t\n", report.Unsorted)
			fmt.Fprintf(out, "Invalid entries: %d\n", report.InvalidEntries)
			fmt.Fprintf(out, "Invalid photos: %d\n", report.InvalidPhotos)
			for _, problem := range multierr.Errors(report.Problems) {
				fmt.Fprintf(out, "  - %v\n", problem)
			}
			if doctorFix {
				fmt.Fprintf(out, "Fixed history order: %t\n", report.Fixed)
				// re-check so the exit status reflects the final state
				report, err = service.RunDoctor(tr, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Collapse duplicate dates and sort history")
}
