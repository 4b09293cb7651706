package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/applicant-scorer/internal/config"
	"github.com/jonathan/applicant-scorer/internal/db"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent embedding cache",
}

var cacheInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the embedding cache table",
	RunE:  runCacheInit,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired cached embeddings",
	RunE:  runCachePrune,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many embeddings are cached",
	RunE:  runCacheStats,
}

var (
	cacheStatsModel string
	cacheStatsText  string
)

func init() {
	cacheStatsCmd.Flags().StringVar(&cacheStatsModel, "model", "", "Only count embeddings of this model")
	cacheStatsCmd.Flags().StringVar(&cacheStatsText, "text", "", "Also look up the cache entry for this text (skill name or description)")

	cacheCmd.AddCommand(cacheInitCmd, cachePruneCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

// connectCache opens the database named by settings.
func connectCache(ctx context.Context, cmd *cobra.Command) (*db.DB, *config.Config, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	database.SetCacheTTL(cfg.CacheTTL())
	return database, cfg, nil
}

func runCacheInit(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, _, err := connectCache(ctx, cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, "Embedding cache table is ready")
	return nil
}

func runCachePrune(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, _, err := connectCache(ctx, cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	removed, err := database.PruneExpired(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Removed %d expired embeddings\n", removed)
	return nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, cfg, err := connectCache(ctx, cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	count, err := database.CountEmbeddings(ctx, cacheStatsModel)
	if err != nil {
		return err
	}
	model := cacheStatsModel
	if model == "" {
		model = "all models"
	}
	_, _ = fmt.Fprintf(os.Stdout, "Cached embeddings (%s): %d\n", model, count)
	_, _ = fmt.Fprintf(os.Stdout, "TTL for new entries: %s\n", cfg.CacheTTL())

	if cacheStatsText == "" {
		return nil
	}
	lookupModel := cacheStatsModel
	if lookupModel == "" {
		lookupModel = cfg.EmbeddingModel
	}
	entry, err := database.GetCachedEmbedding(ctx, lookupModel, cacheStatsText)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, describeCacheEntry(lookupModel, cacheStatsText, entry))
	return nil
}

// describeCacheEntry renders one cache lookup for the stats command.
func describeCacheEntry(model, text string, entry *db.CachedEmbedding) string {
	if entry == nil {
		return fmt.Sprintf("%q (%s): not cached", text, model)
	}
	status := "valid, no expiry"
	if entry.ExpiresAt != nil {
		status = "valid until " + entry.ExpiresAt.UTC().Format(time.RFC3339)
		if entry.IsExpired() {
			status = "expired at " + entry.ExpiresAt.UTC().Format(time.RFC3339)
		}
	}
	return fmt.Sprintf("%q (%s): %d dimensions, cached %s, %s",
		text, model, len(entry.Vector), entry.CreatedAt.UTC().Format(time.RFC3339), status)
}
