package dailyhealth

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

var (
	weightDate string
	sleepDate  string
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Record body weight",
}

var weightSetCmd = &cobra.Command{
	Use:   "set <kg>",
	Short: "Set the weight for a day (default today)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := parseWeightArg(args[0])
		if err != nil {
			return err
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, weightDate)
			if err != nil {
				return err
			}
			if _, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				return tracker.SetWeight(e, weight), nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight for %s: %s kg\n", date, formatKg(weight))
			return nil
		})
	},
}

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Record sleep hours",
}

var sleepSetCmd = &cobra.Command{
	Use:   "set <hours>",
	Short: "Set sleep hours for a day (default today)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := parseNonNegativeIntArg("sleep hours", args[0])
		if err != nil {
			return err
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, sleepDate)
			if err != nil {
				return err
			}
			if _, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				return tracker.SetSleep(e, hours), nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sleep for %s: %d h\n", date, hours)
			return nil
		})
	},
}

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List daily logs, newest last",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			entries := tracker.Last(tr.History(), historyLimit)
			if historyJSON {
				return printJSON(cmd, entries)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT\tSLEEP\tKCAL\tMEALS\tEXERCISES\tSKINCARE\tDOSE")
			for _, e := range entries {
				dose := ""
				if e.MounjaroDose {
					dose = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
					e.Date, formatKg(e.Weight), e.SleepHours, tracker.DailyCalories(e),
					len(e.Meals), len(e.Exercises), skincareSummary(e.Skincare), dose)
			}
			return nil
		})
	},
}

func skincareSummary(s model.Skincare) string {
	out := ""
	if s.Morning {
		out += "AM"
	}
	if s.Evening {
		if out != "" {
			out += "+"
		}
		out += "PM"
	}
	if out == "" {
		return "-"
	}
	return out
}

func init() {
	rootCmd.AddCommand(weightCmd, sleepCmd, historyCmd)
	weightCmd.AddCommand(weightSetCmd)
	sleepCmd.AddCommand(sleepSetCmd)

	weightSetCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	sleepSetCmd.Flags().StringVar(&sleepDate, "date", "", "Date YYYY-MM-DD (default today)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 30, "Number of most recent days to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print entries as JSON")
}
