package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/applicant-scorer/internal/config"
	"github.com/jonathan/applicant-scorer/internal/db"
	"github.com/jonathan/applicant-scorer/internal/embedding"
	"github.com/jonathan/applicant-scorer/internal/llm"
	"github.com/jonathan/applicant-scorer/internal/logger"
	"github.com/jonathan/applicant-scorer/internal/ratelimit"
	"github.com/jonathan/applicant-scorer/internal/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadSettings resolves the effective configuration: config file, then flags,
// then environment, then built-in defaults.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loadedCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = rootAPIKey
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = rootDatabaseURL
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if flags.Changed("json-logs") {
		cfg.JSONLogs = rootJSONLogs
	}
	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(config.Defaults())

	// numeric flags apply after defaults so an explicit zero is kept
	if f := flags.Lookup("threshold"); f != nil && f.Changed {
		threshold, err := flags.GetFloat64("threshold")
		if err != nil {
			return nil, err
		}
		merged.SkillThreshold = threshold
	}
	if f := flags.Lookup("concurrency"); f != nil && f.Changed {
		concurrency, err := flags.GetInt("concurrency")
		if err != nil {
			return nil, err
		}
		merged.Concurrency = concurrency
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLogger builds the process logger from settings.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// rateLimitConfig starts from the EMBED_RATE_LIMIT_* environment and applies config overrides.
func rateLimitConfig(cfg *config.Config) *ratelimit.Config {
	rl := ratelimit.LoadConfig()
	if cfg.EmbedRateLimit > 0 {
		rl.Enabled = true
		rl.Limit = cfg.EmbedRateLimit
		rl.Window = time.Minute
	}
	if cfg.EmbedBurst > 0 {
		rl.Burst = cfg.EmbedBurst
	}
	return rl
}

// providerStack is the similarity provider plus the resources it holds.
type providerStack struct {
	Provider embedding.Provider
	gemini   *embedding.GeminiProvider
	database *db.DB
}

// Close releases the upstream client and database pool.
func (s *providerStack) Close() {
	if s.gemini != nil {
		_ = s.gemini.Close()
	}
	if s.database != nil {
		s.database.Close()
	}
}

// newProviderStack builds Gemini → rate limiter → cache, with the Postgres
// store behind the cache when a database URL is configured. A database that
// cannot be reached only disables the persistent cache.
func newProviderStack(ctx context.Context, cfg *config.Config, log *zap.Logger) (*providerStack, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	llmCfg := llm.DefaultConfig().WithEmbeddingModel(cfg.EmbeddingModel)
	gemini, err := embedding.NewGeminiProvider(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}
	stack := &providerStack{gemini: gemini}

	limited := embedding.NewRateLimited(gemini, rateLimitConfig(cfg).NewBucket())
	cacheOpts := []embedding.CacheOption{embedding.WithLogger(log)}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("embedding cache database unavailable, continuing without it", zap.Error(err))
		} else if err := database.EnsureSchema(ctx); err != nil {
			log.Warn("embedding cache schema unavailable, continuing without it", zap.Error(err))
			database.Close()
		} else {
			database.SetCacheTTL(cfg.CacheTTL())
			stack.database = database
			cacheOpts = append(cacheOpts, embedding.WithStore(database))
		}
	}

	stack.Provider = embedding.NewCached(limited, cacheOpts...)
	return stack, nil
}

// readJSONFile decodes a JSON file into v.
func readJSONFile(path string, v any) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from %s: %w", path, err)
	}
	return data, nil
}

// warnOnInvalidInput validates an input document; mismatches are logged, never fatal.
func warnOnInvalidInput(log *zap.Logger, schemaName, path string, data []byte) {
	if err := schemas.ValidateDocument(schemaName, data); err != nil {
		log.Warn("input failed schema validation", zap.String("file", path), zap.Error(err))
	}
}

// checkOutput validates a result before it is written. A result that does not
// match its schema is an error; a schema that cannot be loaded is only a warning.
func checkOutput(log *zap.Logger, schemaName string, v any) error {
	err := schemas.ValidateValue(schemaName, v)
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("generated result is invalid: %w", err)
	}
	log.Warn("could not validate output against schema", zap.Error(err))
	return nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty or "-".
func writeJSON(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}
	jsonOutput = append(jsonOutput, '\n')

	if path == "" || path == "-" {
		_, err := os.Stdout.Write(jsonOutput)
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
