package dailyhealth

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/app"
	"github.com/mallkiller3-ctrl/daily-health/internal/db"
	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/provider/gemini"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/store"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

// clock is replaced in tests.
var clock = time.Now

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func withTracker(run func(*sql.DB, *service.Tracker) error) error {
	return withDB(func(sqldb *sql.DB) error {
		tr, err := service.NewTracker(store.New(sqldb), service.WithClock(clock))
		if err != nil {
			return err
		}
		return run(sqldb, tr)
	})
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// resolveDate returns value as an ISO date, or today when value is empty.
func resolveDate(tr *service.Tracker, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return tr.Today(), nil
	}
	if _, err := time.ParseInLocation(model.DateLayout, value, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}

func parseMealType(value string) (model.MealType, error) {
	t, ok := model.ParseMealType(strings.ToLower(strings.TrimSpace(value)))
	if !ok {
		return "", fmt.Errorf("invalid meal type %q (use breakfast|lunch|dinner|snack)", value)
	}
	return t, nil
}

func parseWeightArg(value string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || w <= 0 {
		return 0, fmt.Errorf("invalid weight %q (expected kg > 0)", value)
	}
	return tracker.RoundWeight(w), nil
}

func parseNonNegativeIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return v, nil
}

// chartDays resolves the chart window from the flag, the stored default and
// finally the config file.
func chartDays(sqldb *sql.DB, flagValue string) (int, string, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		stored, err := service.ConfigOr(sqldb, service.ConfigDefaultChartRange, cfg.Chart.DefaultRange)
		if err != nil {
			return 0, "", err
		}
		value = stored
	}
	days, err := tracker.ParseChartRange(value, cfg.Chart.Ranges)
	if err != nil {
		return 0, "", err
	}
	return days, value, nil
}

func newGeminiClient(sqldb *sql.DB) (*gemini.Client, error) {
	coachModel, err := service.ConfigOr(sqldb, service.ConfigCoachModel, cfg.Gemini.CoachModel)
	if err != nil {
		return nil, err
	}
	key := cfg.Gemini.APIKey()
	if key == "" {
		return nil, fmt.Errorf("missing Gemini API key (set %s or API_KEY)", cfg.Gemini.APIKeyEnv)
	}
	return &gemini.Client{
		APIKey:         key,
		BaseURL:        cfg.Gemini.BaseURL,
		NutritionModel: cfg.Gemini.NutritionModel,
		CoachModel:     coachModel,
		HTTPClient:     &http.Client{Timeout: cfg.Gemini.Timeout()},
	}, nil
}

func newNutritionAnalyzer(sqldb *sql.DB) (service.NutritionAnalyzer, error) {
	client, err := newGeminiClient(sqldb)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.Cache.NutritionTTLHours) * time.Hour
	return service.NewCachedAnalyzer(client, cfg.Cache.SizeBytes, ttl), nil
}

func formatKg(w float64) string {
	return strconv.FormatFloat(tracker.RoundWeight(w), 'f', 2, 64)
}

func intPtr(v int) *int {
	return &v
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func timeoutContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, cfg.Gemini.Timeout())
}
