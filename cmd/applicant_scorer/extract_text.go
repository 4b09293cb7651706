package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/applicant-scorer/internal/ingestion"
	"github.com/jonathan/applicant-scorer/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text",
	Short: "Extract plain text from a resume file (txt, pdf, docx)",
	Long: `Extracts and cleans the text of a resume file. A file that cannot be read
produces the "Error extracting text: ..." placeholder instead of failing, so
downstream scoring always has a value; use --strict to fail instead.`,
	RunE: runExtractText,
}

var (
	extractTextFile   string
	extractTextOutDir string
	extractTextStrict bool
)

func init() {
	extractTextCmd.Flags().StringVarP(&extractTextFile, "file", "f", "", "Path to resume file (required)")
	extractTextCmd.Flags().StringVarP(&extractTextOutDir, "out-dir", "o", "", "Directory for <name>.txt and <name>.meta.json (defaults to printing text to stdout)")
	extractTextCmd.Flags().BoolVar(&extractTextStrict, "strict", false, "Fail when the file cannot be extracted")

	if err := extractTextCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(extractTextCmd)
}

func runExtractText(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	text, metadata := ingestion.IngestFromFile(extractTextFile)
	if metadata.Error != "" {
		if extractTextStrict {
			return fmt.Errorf("failed to extract text: %s", metadata.Error)
		}
		log.Warn("text extraction failed, storing placeholder",
			zap.String("file", extractTextFile), zap.String("error", metadata.Error))
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintExtraction(metadata, text)
	}

	if extractTextOutDir == "" {
		_, _ = fmt.Fprintln(os.Stdout, text)
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(extractTextFile), filepath.Ext(extractTextFile))
	if err := ingestion.WriteOutput(extractTextOutDir, base, text, metadata); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "Successfully extracted text to %s\n", filepath.Join(extractTextOutDir, base+".txt"))
	return nil
}
