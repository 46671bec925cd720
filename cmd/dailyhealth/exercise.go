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

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercises",
}

var (
	exerciseDate     string
	exerciseDuration int
	exerciseReps     int
	exerciseSets     int
	exerciseName     string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise; names matching a preset are marked as presets",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := catalog.Load()
		if err != nil {
			return err
		}
		name := strings.TrimSpace(strings.Join(args, " "))
		ex := model.ExerciseEntry{
			ID:              tracker.NewID(),
			Name:            name,
			DurationMinutes: presets.ExerciseDefaults.DurationMinutes,
			Reps:            intPtr(presets.ExerciseDefaults.Reps),
			Sets:            intPtr(presets.ExerciseDefaults.Sets),
			Source:          model.SourceCustom,
		}
		if _, ok := presets.FindExercise(name); ok {
			ex.Source = model.SourcePreset
		}
		if cmd.Flags().Changed("duration") {
			ex.DurationMinutes = exerciseDuration
		}
		if cmd.Flags().Changed("reps") {
			ex.Reps = intPtr(exerciseReps)
		}
		if cmd.Flags().Changed("sets") {
			ex.Sets = intPtr(exerciseSets)
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, exerciseDate)
			if err != nil {
				return err
			}
			if _, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				return tracker.AddExercise(e, ex), nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s exercise %s on %s (id %s)\n", ex.Source, ex.Name, date, ex.ID)
			return nil
		})
	},
}

var exercisePresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List preset exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := catalog.Load()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "NAME\tCATEGORY")
		for _, p := range presets.Exercises {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Name, p.Category)
		}
		d := presets.ExerciseDefaults
		fmt.Fprintf(cmd.OutOrStdout(), "Defaults: %d min, %d reps, %d sets\n", d.DurationMinutes, d.Reps, d.Sets)
		return nil
	},
}

var exerciseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an exercise's name, duration, reps or sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := tracker.ExercisePatch{}
		if cmd.Flags().Changed("name") {
			patch.Name = &exerciseName
		}
		if cmd.Flags().Changed("duration") {
			patch.DurationMinutes = intPtr(exerciseDuration)
		}
		if cmd.Flags().Changed("reps") {
			patch.Reps = intPtr(exerciseReps)
		}
		if cmd.Flags().Changed("sets") {
			patch.Sets = intPtr(exerciseSets)
		}
		if patch == (tracker.ExercisePatch{}) {
			return fmt.Errorf("set at least one of --name, --duration, --reps, --sets")
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, exerciseDate)
			if err != nil {
				return err
			}
			if _, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				next, ok := tracker.UpdateExercise(e, args[0], patch)
				if !ok {
					return e, fmt.Errorf("exercise %s not found on %s", args[0], date)
				}
				return next, nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated exercise %s\n", args[0])
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, exerciseDate)
			if err != nil {
				return err
			}
			if _, err := tr.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
				next, ok := tracker.DeleteExercise(e, args[0])
				if !ok {
					return e, fmt.Errorf("exercise %s not found on %s", args[0], date)
				}
				return next, nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %s\n", args[0])
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, exerciseDate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tMIN\tREPS\tSETS\tSOURCE")
			for _, ex := range tr.EntryFor(date).Exercises {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t%s\t%s\n",
					ex.ID, ex.Name, ex.DurationMinutes, optionalInt(ex.Reps), optionalInt(ex.Sets), ex.Source)
			}
			return nil
		})
	},
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exercisePresetsCmd, exerciseUpdateCmd, exerciseDeleteCmd, exerciseListCmd)

	for _, c := range []*cobra.Command{exerciseAddCmd, exerciseUpdateCmd} {
		c.Flags().IntVar(&exerciseDuration, "duration", 10, "Duration in minutes")
		c.Flags().IntVar(&exerciseReps, "reps", 15, "Repetitions")
		c.Flags().IntVar(&exerciseSets, "sets", 3, "Sets")
	}
	exerciseUpdateCmd.Flags().StringVar(&exerciseName, "name", "", "New exercise name")
	for _, c := range []*cobra.Command{exerciseAddCmd, exerciseUpdateCmd, exerciseDeleteCmd, exerciseListCmd} {
		c.Flags().StringVar(&exerciseDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
}
