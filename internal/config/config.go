// Package config resolves loanbook settings from defaults, a YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "loanbook.yaml"
	DefaultEnvFile    = ".env"

	envPrefix = "LOANBOOK_"
)

type Config struct {
	DataBackend string `yaml:"data_backend"`
	DataPath    string `yaml:"data_path"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	HistoryFile string `yaml:"history_file"`
	HistorySize int    `yaml:"history_size"`
}

func Default() Config {
	return Config{
		DataBackend: "json",
		DataPath:    filepath.Join("data", "loanbook.json"),
		LogLevel:    "info",
		HistorySize: 50,
	}
}

// Load reads configPath and envPath on top of the defaults, then applies LOANBOOK_*
// variables. Missing files are skipped. Variables already set in the environment
// win over those in the .env file.
func Load(configPath, envPath string) (Config, error) {
	cfg := Default()

	if raw, err := os.ReadFile(configPath); err == nil {
		var f Config
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
		cfg.merge(f)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg.DataBackend = getEnv("DATA_BACKEND", cfg.DataBackend)
	cfg.DataPath = getEnv("DATA_PATH", cfg.DataPath)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HistoryFile = getEnv("HISTORY_FILE", cfg.HistoryFile)
	cfg.HistorySize = getEnvInt("HISTORY_SIZE", cfg.HistorySize)

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.DataPath), "loanbook.log")
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(filepath.Dir(cfg.DataPath), "history.json")
	}
	return cfg, nil
}

func (c *Config) merge(f Config) {
	if f.DataBackend != "" {
		c.DataBackend = f.DataBackend
	}
	if f.DataPath != "" {
		c.DataPath = f.DataPath
	}
	if f.LogFile != "" {
		c.LogFile = f.LogFile
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.HistoryFile != "" {
		c.HistoryFile = f.HistoryFile
	}
	if f.HistorySize != 0 {
		c.HistorySize = f.HistorySize
	}
}

// Validate reports every problem with the configuration in a single error.
func (c Config) Validate() error {
	var problems []string

	switch c.DataBackend {
	case "json", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be json or sqlite", c.DataBackend))
	}

	if strings.TrimSpace(c.DataPath) == "" {
		problems = append(problems, "data path cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.HistorySize < 1 || c.HistorySize > 1000 {
		problems = append(problems, fmt.Sprintf("invalid history size %d: must be between 1 and 1000", c.HistorySize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
