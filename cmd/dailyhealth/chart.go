package dailyhealth

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

var (
	chartRange string
	chartJSON  bool
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the weight trend series",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(sqldb *sql.DB, tr *service.Tracker) error {
			days, label, err := chartDays(sqldb, chartRange)
			if err != nil {
				return err
			}
			points := tracker.ChartSeries(tr.History(), days)
			if chartJSON {
				return printJSON(cmd, struct {
					Range    string               `json:"range"`
					Days     int                  `json:"days"`
					Eligible bool                 `json:"eligible"`
					Points   []tracker.ChartPoint `json:"points"`
				}{label, days, tracker.ChartEligible(points), points})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight trend (%s, %d days)\n", label, days)
			printChart(cmd.OutOrStdout(), points)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartRange, "range", "", "Chart range: 1m|2m|3m|4m or day count (default from config)")
	chartCmd.Flags().BoolVar(&chartJSON, "json", false, "Print the series as JSON")
}
