package dailyhealth

import (
	"bufio"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/service"
)

const resetPrompt = "모든 기록과 프로필 설정이 초기화됩니다. 계속하시겠습니까? [y/N] "

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all logs, photos and profile settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed := resetYes
		if !confirmed {
			fmt.Fprint(cmd.OutOrStdout(), resetPrompt)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			confirmed = answer == "y" || answer == "yes"
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			if err := tr.Reset(confirmed); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data has been reset")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Skip the confirmation prompt")
}
