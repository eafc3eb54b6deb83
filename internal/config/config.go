// Package config provides configuration loading for the CLI and
// server. Values come from a JSON file, environment variables, and
// CLI flags, merged in that order of increasing precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds every externally provided setting. The core pipeline
// never reads these directly; main turns them into client handles.
type Config struct {
	// Extraction service
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Persistence collaborator
	AirtableAPIKey  string `json:"airtable_api_key,omitempty"`
	AirtableBaseID  string `json:"airtable_base_id,omitempty"`
	ResumeTableID   string `json:"airtable_resume_table_id,omitempty"`
	FeedbackTableID string `json:"airtable_feedback_table_id,omitempty"`

	// Optional audit database
	DatabaseURL string `json:"database_url,omitempty"`

	// Behavior
	AppEnv string `json:"app_env,omitempty"` // "dev" seeds the sample intake
	Port   int    `json:"port,omitempty"`
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		AirtableAPIKey:  os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID:  os.Getenv("AIRTABLE_BASE_ID"),
		ResumeTableID:   os.Getenv("AIRTABLE_RESUME_TABLE_ID"),
		FeedbackTableID: os.Getenv("AIRTABLE_FEEDBACK_TABLE_ID"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AppEnv:          os.Getenv("APP_ENV"),
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// MergeWithDefaults returns a new Config with empty fields filled
// from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.AirtableAPIKey == "" {
		result.AirtableAPIKey = defaults.AirtableAPIKey
	}
	if result.AirtableBaseID == "" {
		result.AirtableBaseID = defaults.AirtableBaseID
	}
	if result.ResumeTableID == "" {
		result.ResumeTableID = defaults.ResumeTableID
	}
	if result.FeedbackTableID == "" {
		result.FeedbackTableID = defaults.FeedbackTableID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.AppEnv == "" {
		result.AppEnv = defaults.AppEnv
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Validate checks that the settings required to generate resumes are
// present. Persistence settings are optional; the pipeline degrades
// to skipping those writes.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.AirtableAPIKey != "" && c.AirtableBaseID == "" {
		return fmt.Errorf("config error: AIRTABLE_BASE_ID is required when an Airtable API key is set")
	}
	return nil
}
