// Package main provides the entry point for the applicant scorer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "applicant_scorer",
	Short: "Score job applicants against job requirements",
	Long: `Applicant scorer compares an applicant's skills, resume text and years of experience
against a job's skill tags, description and required experience, and produces
a 0-100 score with per-skill match evidence.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
	SilenceUsage: true,
}

var (
	rootConfigPath  string
	rootAPIKey      string
	rootDatabaseURL string
	rootVerbose     bool
	rootJSONLogs    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	rootCmd.PersistentFlags().StringVar(&rootAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	// Database URL for the persistent embedding cache
	rootCmd.PersistentFlags().StringVar(&rootDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&rootJSONLogs, "json-logs", false, "Emit logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
