package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrMissingEnvSection = errors.New("config section for env missing")

type Config struct {
	Environment string `toml:"-"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToConsole  bool   `toml:"log_to_console"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	SentryDSN     string `toml:"-"`
	// metrics
	MetricsTextfile string `toml:"metrics_textfile"`
	// tracker
	ReportCacheMB int      `toml:"report_cache_mb"`
	Reports       []string `toml:"reports"`
	Users         []User   `toml:"users"`
}

// User is one roster entry, turned into a fitness record at startup.
// Steps and Calories stay nil when missing from the file.
type User struct {
	Name        string `toml:"name"`
	Steps       []int  `toml:"steps"`
	Calories    []int  `toml:"calories"`
	StepGoal    int    `toml:"step_goal"`
	CalorieGoal int    `toml:"calorie_goal"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env,
// with environment variable overrides applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnvSection, env)
	}

	cfg.Environment = strings.ToLower(env)
	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		cfg.SentryDSN = dsn
	}
	if level := os.Getenv("WEEKLYFIT_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if path := os.Getenv("WEEKLYFIT_METRICS_TEXTFILE"); path != "" {
		cfg.MetricsTextfile = path
	}
}
