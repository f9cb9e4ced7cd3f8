// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Model service API key

	// Model selection
	Provider     string `json:"provider,omitempty"`       // "gemini" (default) or "responses"
	Model        string `json:"model,omitempty"`          // Override for the advanced-tier model
	ModelBaseURL string `json:"model_base_url,omitempty"` // Endpoint for the responses provider

	// Behavior
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"` // Per-request wall clock budget
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed progress information

	// Batch driver
	BatchDelaySeconds   int `json:"batch_delay_seconds,omitempty"`   // Pause between batch requests
	BatchBackoffSeconds int `json:"batch_backoff_seconds,omitempty"` // Extra pause after a rate-limit error
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty connection fields from the environment. Flags and
// config files win over environment variables.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("MODEL_API_KEY")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Provider != "" && c.Provider != "gemini" && c.Provider != "responses" {
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}
	if c.Provider == "responses" && c.ModelBaseURL == "" {
		return fmt.Errorf("config error: 'model_base_url' is required for the responses provider")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.BatchDelaySeconds < 0 {
		return fmt.Errorf("config error: 'batch_delay_seconds' must be non-negative")
	}
	if c.BatchBackoffSeconds < 0 {
		return fmt.Errorf("config error: 'batch_backoff_seconds' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ModelBaseURL == "" {
		result.ModelBaseURL = defaults.ModelBaseURL
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.BatchDelaySeconds == 0 {
		result.BatchDelaySeconds = defaults.BatchDelaySeconds
	}
	if result.BatchBackoffSeconds == 0 {
		result.BatchBackoffSeconds = defaults.BatchBackoffSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
