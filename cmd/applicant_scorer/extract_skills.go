package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/applicant-scorer/internal/ingestion"
	"github.com/jonathan/applicant-scorer/internal/llm"
	"github.com/jonathan/applicant-scorer/internal/observability"
	"github.com/jonathan/applicant-scorer/internal/skills"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract skill names from a resume or job description",
	Long: `Asks the LLM for the skills mentioned in a resume (txt, pdf, docx) or a job
description, and writes them as a normalized, de-duplicated, sorted JSON list.`,
	RunE: runExtractSkills,
}

var (
	extractSkillsFile   string
	extractSkillsSource string
	extractSkillsOutput string
)

// skillsOutput is the JSON written by extract-skills.
type skillsOutput struct {
	Source string   `json:"source"`
	File   string   `json:"file"`
	Skills []string `json:"skills"`
}

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractSkillsFile, "file", "f", "", "Path to resume or job description file (required)")
	extractSkillsCmd.Flags().StringVarP(&extractSkillsSource, "source", "s", string(skills.SourceResume), "Kind of document: resume or job")
	extractSkillsCmd.Flags().StringVarP(&extractSkillsOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")

	if err := extractSkillsCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	source := skills.Source(strings.ToLower(strings.TrimSpace(extractSkillsSource)))
	if source != skills.SourceResume && source != skills.SourceJob {
		return fmt.Errorf("--source must be %q or %q, got %q", skills.SourceResume, skills.SourceJob, extractSkillsSource)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	text, err := ingestion.ExtractResumeText(extractSkillsFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", extractSkillsFile, err)
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey,
		llm.WithLimiter(rateLimitConfig(cfg).NewBucket()),
		llm.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	found, err := skills.ExtractSkills(ctx, client, text, source)
	if err != nil {
		return fmt.Errorf("skill extraction failed: %w", err)
	}
	log.Info("extracted skills",
		zap.String("file", extractSkillsFile),
		zap.String("model", client.GetModel(llm.TierLite)),
		zap.Int("count", len(found)))

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintSkills(strings.ToUpper(string(source))+" SKILLS", found)
	}

	return writeJSON(extractSkillsOutput, skillsOutput{
		Source: string(source),
		File:   extractSkillsFile,
		Skills: found,
	})
}
