// Package config loads engine-host configuration from environment
// variables and an optional rule document, with hot-reload support built
// on a watcher/reload-channel/mutex shape pointed at a single rule
// document file.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"

	"schedgen/internal/model"
)

// Config holds the engine host's runtime configuration, loaded from
// environment variables via github.com/caarlos0/env/v6 struct tags.
type Config struct {
	RulesFile        string `env:"SCHEDGEN_RULES_FILE"`
	FeaturesFile     string `env:"SCHEDGEN_FEATURES_FILE"`
	StandardCalendar string `env:"SCHEDGEN_STANDARD_CALENDAR"`
	LogLevel         string `env:"SCHEDGEN_LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"SCHEDGEN_LOG_FORMAT" envDefault:"text"`
	Silent           bool   `env:"SCHEDGEN_SILENT" envDefault:"false"`
}

// Load parses Config from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration from environment: %w", err)
	}
	return cfg, nil
}

// RulesFileExists reports whether cfg.RulesFile is set and present on disk,
// distinguishing "no rules configured" from "misconfigured path" for
// callers that want to decide whether a missing file is fatal.
func (c *Config) RulesFileExists() bool {
	if c.RulesFile == "" {
		return false
	}
	_, err := os.Stat(c.RulesFile)
	return err == nil
}

// Snapshot is a point-in-time view of a Manager's loaded rule set,
// returned to hot-reload callbacks.
type Snapshot struct {
	Rules []model.SchedulingRule
	Err   error
}
