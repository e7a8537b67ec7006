package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATA_BACKEND", "DATA_PATH", "LOG_FILE", "LOG_LEVEL", "HISTORY_FILE", "HISTORY_SIZE"} {
		t.Setenv(envPrefix+key, "")
	}
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "none.yaml"), filepath.Join(dir, "none.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != "json" || cfg.LogLevel != "info" || cfg.HistorySize != 50 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogFile != filepath.Join("data", "loanbook.log") {
		t.Fatalf("expected log file next to data, got %s", cfg.LogFile)
	}
	if cfg.HistoryFile != filepath.Join("data", "history.json") {
		t.Fatalf("expected history file next to data, got %s", cfg.HistoryFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "loanbook.yaml", "data_backend: sqlite\ndata_path: /tmp/book.db\nhistory_size: 10\nhistory_file: /tmp/lines.json\n")

	cfg, err := Load(path, filepath.Join(dir, "none.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != "sqlite" || cfg.DataPath != "/tmp/book.db" || cfg.HistorySize != 10 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.HistoryFile != "/tmp/lines.json" {
		t.Fatalf("history file not applied: %s", cfg.HistoryFile)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unset keys should keep defaults, got %s", cfg.LogLevel)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "loanbook.yaml", "data_backend: [unterminated\n")
	if _, err := Load(path, filepath.Join(dir, "none.env")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "loanbook.yaml", "log_level: warn\nhistory_size: 10\n")
	t.Setenv("LOANBOOK_LOG_LEVEL", "debug")
	t.Setenv("LOANBOOK_HISTORY_SIZE", "not a number")

	cfg, err := Load(path, filepath.Join(dir, "none.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env to win, got %s", cfg.LogLevel)
	}
	if cfg.HistorySize != 10 {
		t.Fatalf("unparseable env value should be ignored, got %d", cfg.HistorySize)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Config{DataBackend: "csv", DataPath: " ", LogLevel: "loud", HistorySize: 0}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"data backend", "data path", "log level", "history size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// t.Setenv restores the variable afterwards; unset it so the .env file can fill it
	t.Setenv("LOANBOOK_DATA_PATH", "")
	os.Unsetenv("LOANBOOK_DATA_PATH")

	dir := t.TempDir()
	envPath := write(t, dir, ".env", "LOANBOOK_DATA_PATH=/srv/loanbook/book.json\n")

	cfg, err := Load(filepath.Join(dir, "none.yaml"), envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataPath != "/srv/loanbook/book.json" {
		t.Fatalf("expected data path from .env, got %s", cfg.DataPath)
	}
	if cfg.LogFile != "/srv/loanbook/loanbook.log" {
		t.Fatalf("expected log file beside data, got %s", cfg.LogFile)
	}
}
