package config

import (
	"os"
	"testing"
)

func TestLoadAppliesDefaultsAndEnv(t *testing.T) {
	os.Setenv("SCHEDGEN_RULES_FILE", "/tmp/rules.yaml")
	os.Setenv("SCHEDGEN_LOG_LEVEL", "debug")
	defer os.Unsetenv("SCHEDGEN_RULES_FILE")
	defer os.Unsetenv("SCHEDGEN_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RulesFile != "/tmp/rules.yaml" {
		t.Errorf("RulesFile = %q, want /tmp/rules.yaml", cfg.RulesFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want default text", cfg.LogFormat)
	}
}

func TestRulesFileExistsFalseWhenUnset(t *testing.T) {
	cfg := &Config{}
	if cfg.RulesFileExists() {
		t.Error("expected RulesFileExists to be false with no RulesFile configured")
	}
}

func TestRulesFileExistsFalseWhenMissing(t *testing.T) {
	cfg := &Config{RulesFile: "/does/not/exist.yaml"}
	if cfg.RulesFileExists() {
		t.Error("expected RulesFileExists to be false for a missing path")
	}
}
