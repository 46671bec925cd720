package dailyhealth

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/app"
	"github.com/mallkiller3-ctrl/daily-health/internal/config"
	"github.com/mallkiller3-ctrl/daily-health/internal/logging"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	noColor    bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "dailyhealth",
	Short: "dailyhealth tracks weight, meals, exercise and Mounjaro dosing from your terminal",
	Long: "dailyhealth is a local-first personal health tracker: daily weight, sleep, meals, exercise, " +
		"skincare routine and Mounjaro doses, with BMI, weight trends and an AI nutrition analyzer and coach.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := app.DefaultConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		logging.Setup(logging.LoggerSetupParams{
			LogFileName: cfg.LogsPath,
			LogToStdout: cfg.LogToStdout,
			LogLevel:    cfg.LogLevel,
			Output:      cmd.ErrOrStderr(),
		})
		if noColor {
			color.NoColor = true
		}
		log.WithField("config", path).Debug("configuration loaded")
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: trace|debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
