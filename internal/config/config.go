// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/applicant-scorer/internal/llm"
	"github.com/jonathan/applicant-scorer/internal/scoring"
)

var validate = validator.New()

// DefaultCacheTTLHours is how long persisted embeddings stay valid unless configured otherwise.
const DefaultCacheTTLHours = 30 * 24

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Model access
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	EmbeddingModel string `json:"embedding_model,omitempty"` // Sentence-embedding model name
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL URL for the embedding cache

	// Scoring
	SkillThreshold float64 `json:"skill_threshold,omitempty" validate:"gte=0,lte=1"` // Minimum similarity for a skill match
	Concurrency    int     `json:"concurrency,omitempty" validate:"gte=0,lte=64"`    // Parallel pairs in batch scoring

	// Embedding cache and pacing
	CacheTTLHours  int `json:"cache_ttl_hours,omitempty" validate:"gte=0"`  // TTL of persisted embeddings
	EmbedRateLimit int `json:"embed_rate_limit,omitempty" validate:"gte=0"` // Upstream embedding calls per minute
	EmbedBurst     int `json:"embed_burst,omitempty" validate:"gte=0"`      // Burst capacity for embedding calls

	// Behavior
	Verbose  bool `json:"verbose,omitempty"`   // Print detailed debug information
	JSONLogs bool `json:"json_logs,omitempty"` // Emit logs as JSON
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		EmbeddingModel: llm.DefaultEmbeddingModel,
		SkillThreshold: scoring.DefaultSkillThreshold,
		Concurrency:    scoring.DefaultConcurrency,
		CacheTTLHours:  DefaultCacheTTLHours,
	}
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since the API key may still
// arrive from the environment after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)",
				jsonFieldName(fe.StructField()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// jsonFieldName maps a struct field to its JSON key for error messages.
func jsonFieldName(field string) string {
	switch field {
	case "SkillThreshold":
		return "skill_threshold"
	case "Concurrency":
		return "concurrency"
	case "CacheTTLHours":
		return "cache_ttl_hours"
	case "EmbedRateLimit":
		return "embed_rate_limit"
	case "EmbedBurst":
		return "embed_burst"
	default:
		return strings.ToLower(field)
	}
}

// ApplyEnv fills empty secrets from GEMINI_API_KEY and DATABASE_URL.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}
	if result.EmbedRateLimit == 0 {
		result.EmbedRateLimit = defaults.EmbedRateLimit
	}
	if result.EmbedBurst == 0 {
		result.EmbedBurst = defaults.EmbedBurst
	}

	// Float fields
	if result.SkillThreshold == 0 {
		if defaults.SkillThreshold > 0 {
			result.SkillThreshold = defaults.SkillThreshold
		} else {
			result.SkillThreshold = scoring.DefaultSkillThreshold
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// CacheTTL returns the embedding cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
