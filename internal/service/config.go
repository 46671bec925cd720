package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

const (
	ConfigDefaultChartRange = "default_chart_range"
	ConfigCoachModel        = "coach_model"
)

var ConfigKeys = []string{ConfigCoachModel, ConfigDefaultChartRange}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	if err := checkConfigValue(key, value); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ConfigOr returns the stored value for key, or fallback when unset.
func ConfigOr(db *sql.DB, key, fallback string) (string, error) {
	value, ok, err := GetConfig(db, key)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return fallback, nil
	}
	return value, nil
}

func checkConfigValue(key, value string) error {
	switch key {
	case ConfigDefaultChartRange:
		if _, err := tracker.ParseChartRange(value, tracker.ChartRanges); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	case ConfigCoachModel:
		if value == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
	default:
		keys := append([]string(nil), ConfigKeys...)
		sort.Strings(keys)
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(keys, ", "))
	}
	return nil
}
