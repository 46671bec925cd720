package dailyhealth

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/service"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Talk to the AI health coach",
}

var coachAskCmd = &cobra.Command{
	Use:   "ask <message>...",
	Short: "Ask the coach a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(sqldb *sql.DB, tr *service.Tracker) error {
			client, err := newGeminiClient(sqldb)
			if err != nil {
				return err
			}
			coach := service.NewCoach(client, cfg.Coach.RecentDays)
			ctx, cancel := timeoutContext(cmd)
			defer cancel()
			reply, err := coach.Ask(ctx, tr.Profile(), tr.History(), tr.Now(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		})
	},
}

var coachChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive coaching session (empty line or \"exit\" quits)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(sqldb *sql.DB, tr *service.Tracker) error {
			client, err := newGeminiClient(sqldb)
			if err != nil {
				return err
			}
			coach := service.NewCoach(client, cfg.Coach.RecentDays)
			return runChat(cmd, coach, tr)
		})
	},
}

// runChat reads one message per line. A failed reply is shown and the
// session continues.
func runChat(cmd *cobra.Command, coach *service.Coach, tr *service.Tracker) error {
	out := cmd.OutOrStdout()
	coachName := color.New(color.FgGreen, color.Bold)
	coachName.Fprint(out, "coach> ")
	fmt.Fprintln(out, service.Greeting(tr.Profile().Name))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "exit" || line == "quit" {
			return nil
		}
		ctx, cancel := timeoutContext(cmd)
		reply, err := coach.Ask(ctx, tr.Profile(), tr.History(), tr.Now(), line)
		cancel()
		coachName.Fprint(out, "coach> ")
		if err != nil {
			if errors.Is(err, service.ErrCoachUnavailable) {
				fmt.Fprintln(out, err.Error())
				continue
			}
			return err
		}
		fmt.Fprintln(out, reply)
	}
}

func init() {
	rootCmd.AddCommand(coachCmd)
	coachCmd.AddCommand(coachAskCmd, coachChatCmd)
}
