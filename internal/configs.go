package internal

import (
	"fmt"
	"strings"
	"time"
)

// Default values for configuration.
const (
	DefaultBudgetSeconds = 60
	DefaultCloneDepth    = 50
	DefaultWorkers       = 4
	DefaultHubBaseURL    = "https://huggingface.co"
	DefaultRegistryPath  = ".modelgate_registry.db"
)

// Config holds the validated runtime configuration for a scoring run.
// Fields that require parsing (durations, levels) are set by
// ProcessAndValidate after all sources are merged.
type Config struct {
	TablesPath   string        // Optional weights/thresholds YAML file
	Budget       time.Duration // Per-evaluator time budget
	CloneDepth   int           // Shallow clone depth for repository analysis
	Workers      int           // Concurrent artifacts scored by the score command
	HubBaseURL   string        // Hub API endpoint
	RegistryPath string        // SQLite registry location
	Output       string        // "ndjson" or "table"
	LogLevel     string
	LogFormat    string
}

// ConfigRawInput holds the raw values merged from file, env and flags.
// Viper unmarshals into this struct before validation.
type ConfigRawInput struct {
	TablesPath   string `mapstructure:"tables"`
	BudgetStr    string `mapstructure:"budget"`
	CloneDepth   int    `mapstructure:"clone-depth"`
	Workers      int    `mapstructure:"workers"`
	HubBaseURL   string `mapstructure:"hub-url"`
	RegistryPath string `mapstructure:"registry"`
	Output       string `mapstructure:"output"`
	LogLevel     string `mapstructure:"log-level"`
	LogFormat    string `mapstructure:"log-format"`
}

// ProcessAndValidate performs parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Budget ---
	budget := time.Duration(DefaultBudgetSeconds) * time.Second
	if input.BudgetStr != "" {
		parsed, err := time.ParseDuration(input.BudgetStr)
		if err != nil {
			return fmt.Errorf("invalid budget %q: %w", input.BudgetStr, err)
		}
		if parsed <= 0 {
			return fmt.Errorf("budget must be positive (received %s)", parsed)
		}
		budget = parsed
	}
	cfg.Budget = budget

	// --- 2. Clone depth and workers ---
	if input.CloneDepth <= 0 {
		return fmt.Errorf("clone-depth must be greater than 0 (received %d)", input.CloneDepth)
	}
	cfg.CloneDepth = input.CloneDepth

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Output format ---
	cfg.Output = strings.ToLower(input.Output)
	if cfg.Output == "" {
		cfg.Output = "ndjson"
	}
	if cfg.Output != "ndjson" && cfg.Output != "table" {
		return fmt.Errorf("invalid output format %q. must be ndjson or table", input.Output)
	}

	// --- 4. Logging ---
	cfg.LogLevel = strings.ToLower(input.LogLevel)
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", input.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(input.LogFormat)
	if cfg.LogFormat != "json" {
		cfg.LogFormat = "text"
	}

	// --- 5. Paths and endpoints ---
	cfg.TablesPath = input.TablesPath
	cfg.HubBaseURL = strings.TrimRight(input.HubBaseURL, "/")
	if cfg.HubBaseURL == "" {
		cfg.HubBaseURL = DefaultHubBaseURL
	}
	cfg.RegistryPath = input.RegistryPath
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = DefaultRegistryPath
	}

	return nil
}
