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
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one applicant against one job",
	Long: `Scores one (job, applicant) pair and writes a ScoreResult JSON.

Input is either a single request file (--request) holding {"job": {...}, "applicant": {...}},
or separate job (--job) and applicant (--applicant) record files.`,
	RunE: runScore,
}

var (
	scoreRequest   string
	scoreJob       string
	scoreApplicant string
	scoreOutput    string
	scoreThreshold float64
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreRequest, "request", "r", "", "Path to ScoreRequest JSON file (mutually exclusive with --job/--applicant)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job record JSON file")
	scoreCmd.Flags().StringVarP(&scoreApplicant, "applicant", "a", "", "Path to applicant record JSON file")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output ScoreResult JSON file (defaults to stdout)")
	scoreCmd.Flags().Float64Var(&scoreThreshold, "threshold", scoring.DefaultSkillThreshold, "Minimum similarity for a skill match (0-1)")

	scoreCmd.MarkFlagsMutuallyExclusive("request", "job")
	scoreCmd.MarkFlagsMutuallyExclusive("request", "applicant")
	scoreCmd.MarkFlagsRequiredTogether("job", "applicant")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
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

	// 1. Load the request
	req, err := loadScoreRequest(log)
	if err != nil {
		return err
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
	pair := scoring.PairFromRequest(*req)
	result, err := engine.Score(ctx, pair.Job, pair.Applicant)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	// 4. Validate and write
	if err := checkOutput(log, schemafiles.ScoreResult, result); err != nil {
		return err
	}
	if err := writeJSON(scoreOutput, result); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintScoreResult(req.ID, result)
	}
	log.Info("scored applicant", zap.String("id", req.ID), zap.Float64("final_score", result.FinalScore))

	if scoreOutput != "" && scoreOutput != "-" {
		_, _ = fmt.Fprintf(os.Stderr, "Successfully wrote score to %s\n", scoreOutput)
	}
	return nil
}

// loadScoreRequest reads the request from --request, or from --job and --applicant.
func loadScoreRequest(log *zap.Logger) (*types.ScoreRequest, error) {
	var req types.ScoreRequest

	switch {
	case scoreRequest != "":
		data, err := readJSONFile(scoreRequest, &req)
		if err != nil {
			return nil, err
		}
		warnOnInvalidInput(log, schemafiles.ScoreRequest, scoreRequest, data)
	case scoreJob != "" && scoreApplicant != "":
		if _, err := readJSONFile(scoreJob, &req.Job); err != nil {
			return nil, err
		}
		if _, err := readJSONFile(scoreApplicant, &req.Applicant); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("either --request or both --job and --applicant must be provided")
	}
	return &req, nil
}
