package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`

	Gemini GeminiConfig `toml:"gemini"`
	Coach  CoachConfig  `toml:"coach"`
	Chart  ChartConfig  `toml:"chart"`
	Cache  CacheConfig  `toml:"cache"`
}

type GeminiConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKeyEnv      string `toml:"api_key_env"`
	NutritionModel string `toml:"nutrition_model"`
	CoachModel     string `toml:"coach_model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type CoachConfig struct {
	RecentDays int `toml:"recent_days"`
}

type ChartConfig struct {
	DefaultRange string         `toml:"default_range"`
	Ranges       map[string]int `toml:"ranges"`
}

type CacheConfig struct {
	SizeBytes         int `toml:"size_bytes"`
	NutritionTTLHours int `toml:"nutrition_ttl_hours"`
}

func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Gemini: GeminiConfig{
			BaseURL:        "https://generativelanguage.googleapis.com",
			APIKeyEnv:      "GEMINI_API_KEY",
			NutritionModel: "gemini-3-flash-preview",
			CoachModel:     "gemini-3-pro-preview",
			TimeoutSeconds: 60,
		},
		Coach: CoachConfig{RecentDays: 7},
		Chart: ChartConfig{
			DefaultRange: "1m",
			Ranges:       map[string]int{"1m": 30, "2m": 60, "3m": 90, "4m": 120},
		},
		Cache: CacheConfig{
			SizeBytes:         1 << 20,
			NutritionTTLHours: 24,
		},
	}
}

// Load decodes the TOML file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Coach.RecentDays <= 0 {
		return fmt.Errorf("coach.recent_days must be > 0")
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		return fmt.Errorf("gemini.timeout_seconds must be > 0")
	}
	for name, days := range c.Chart.Ranges {
		if days <= 0 {
			return fmt.Errorf("chart range %q must be > 0 days", name)
		}
	}
	return nil
}

func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// APIKey reads the configured env var, falling back to API_KEY.
func (g GeminiConfig) APIKey() string {
	if g.APIKeyEnv != "" {
		if v := strings.TrimSpace(os.Getenv(g.APIKeyEnv)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(os.Getenv("API_KEY"))
}
