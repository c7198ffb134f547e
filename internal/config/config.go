// Package config loads cru-schedule settings from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rcliao/cru-schedule/internal/logger"
)

// EnvPrefix marks environment overrides. Nested keys use "__", e.g.
// CRU_LOGGING__LEVEL=debug.
const EnvPrefix = "CRU_"

const dateLayout = "2006-01-02"

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type CalendarConfig struct {
	// TermStart is the date of the first week of classes, YYYY-MM-DD.
	TermStart string `json:"term_start"`
}

type Config struct {
	DB       string         `json:"db"`
	Dir      string         `json:"dir"`
	Out      string         `json:"out"`
	Logging  LoggingConfig  `json:"logging"`
	Calendar CalendarConfig `json:"calendar"`
}

// Default returns the built-in settings.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DB:  filepath.Join(home, ".cru-schedule", "selections.db"),
		Dir: ".",
		Out: "out",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Calendar: CalendarConfig{
			TermStart: fmt.Sprintf("%d-09-01", time.Now().Year()),
		},
	}
}

// Load reads defaults, then path (if non-empty), then environment overrides.
// A missing file is an error only when path was given explicitly.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the commands cannot use.
func (c *Config) Validate() error {
	if c.DB == "" {
		return errors.New("db path is empty")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if _, err := c.Calendar.Start(); err != nil {
		return err
	}
	return nil
}

// Start parses TermStart.
func (c CalendarConfig) Start() (time.Time, error) {
	t, err := time.Parse(dateLayout, c.TermStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar.term_start %q: want YYYY-MM-DD", c.TermStart)
	}
	return t, nil
}
