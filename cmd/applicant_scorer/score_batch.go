package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/applicant-scorer/internal/observability"
	"github.com/jonathan/applicant-scorer/internal/scoring"
	"github.com/jonathan/applicant-scorer/internal/types"
	schemafiles "github.com/jonathan/applicant-scorer/schemas"
	"github.com/spf13/cobra"
)

var scoreBatchCmd = &cobra.Command{
	Use:   "score-batch",
	Short: "Score many independent (job, applicant) pairs",
	Long: `Scores every request in a BatchRequest JSON file ({"requests": [...]}) and writes a
BatchResult JSON with one result per request, in input order. Pairs are scored
independently; no ranking is applied. Any failing pair fails the whole batch.`,
	RunE: runScoreBatch,
}

var (
	scoreBatchInput       string
	scoreBatchOutput      string
	scoreBatchThreshold   float64
	scoreBatchConcurrency int
)

func init() {
	scoreBatchCmd.Flags().StringVarP(&scoreBatchInput, "in", "i", "", "Path to BatchRequest JSON file (required)")
	scoreBatchCmd.Flags().StringVarP(&scoreBatchOutput, "out", "o", "", "Path to output BatchResult JSON file (defaults to stdout)")
	scoreBatchCmd.Flags().Float64Var(&scoreBatchThreshold, "threshold", scoring.DefaultSkillThreshold, "Minimum similarity for a skill match (0-1)")
	scoreBatchCmd.Flags().IntVar(&scoreBatchConcurrency, "concurrency", scoring.DefaultConcurrency, "Number of pairs scored in parallel")

	if err := scoreBatchCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreBatchCmd)
}

func runScoreBatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// 1. Load and check the batch
	var batch types.BatchRequest
	data, err := readJSONFile(scoreBatchInput, &batch)
	if err != nil {
		return err
	}
	warnOnInvalidInput(log, schemafiles.BatchRequest, scoreBatchInput, data)
	if err := batch.Validate(); err != nil {
		return fmt.Errorf("invalid batch request: %w", err)
	}

	pairs := make([]scoring.Pair, len(batch.Requests))
	for i, req := range batch.Requests {
		pairs[i] = scoring.PairFromRequest(req)
	}

	// 2. Build the engine
	stack, err := newProviderStack(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stack.Close()

	engine, err := scoring.NewEngine(stack.Provider,
		scoring.WithThreshold(cfg.SkillThreshold),
		scoring.WithLogger(log))
	if err != nil {
		return err
	}

	// 3. Score
	result, err := engine.ScoreBatch(ctx, pairs, cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("batch scoring failed: %w", err)
	}

	// 4. Validate and write
	if err := checkOutput(log, schemafiles.BatchResult, result); err != nil {
		return err
	}
	if err := writeJSON(scoreBatchOutput, result); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintBatchResult(result)
	}
	if scoreBatchOutput != "" && scoreBatchOutput != "-" {
		_, _ = fmt.Fprintf(os.Stderr, "Successfully wrote %d scores to %s\n", len(result.Items), scoreBatchOutput)
	}
	return nil
}
