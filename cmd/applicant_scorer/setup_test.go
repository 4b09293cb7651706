package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/applicant-scorer/internal/config"
	"github.com/jonathan/applicant-scorer/internal/types"
	schemafiles "github.com/jonathan/applicant-scorer/schemas"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// settingsCmd returns a command carrying the numeric flags loadSettings looks for.
func settingsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Float64("threshold", 0.6, "")
	cmd.Flags().Int("concurrency", 4, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func withConfigPath(t *testing.T, path string) {
	t.Helper()
	prev := rootConfigPath
	rootConfigPath = path
	t.Cleanup(func() { rootConfigPath = prev })
}

func TestLoadSettings_Defaults(t *testing.T) {
	withConfigPath(t, "")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "")

	cfg, err := loadSettings(settingsCmd(t))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 0.6, cfg.SkillThreshold)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, config.Defaults().EmbeddingModel, cfg.EmbeddingModel)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadSettings_ConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skill_threshold": 0.8, "concurrency": 2, "api_key": "file-key"}`), 0644))
	withConfigPath(t, path)

	cfg, err := loadSettings(settingsCmd(t))
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.SkillThreshold)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "file-key", cfg.APIKey)

	// explicit zero threshold survives defaults
	cfg, err = loadSettings(settingsCmd(t, "--threshold", "0", "--concurrency", "8"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.SkillThreshold)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadSettings_Invalid(t *testing.T) {
	withConfigPath(t, "")

	_, err := loadSettings(settingsCmd(t, "--threshold", "1.5"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill_threshold")

	withConfigPath(t, filepath.Join(t.TempDir(), "missing.json"))
	_, err = loadSettings(settingsCmd(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRateLimitConfig(t *testing.T) {
	t.Setenv("EMBED_RATE_LIMIT_ENABLED", "false")

	rl := rateLimitConfig(&config.Config{})
	assert.False(t, rl.Enabled)
	assert.Nil(t, rl.NewBucket())

	rl = rateLimitConfig(&config.Config{EmbedRateLimit: 60, EmbedBurst: 5})
	assert.True(t, rl.Enabled)
	assert.Equal(t, 60, rl.Limit)
	assert.Equal(t, time.Minute, rl.Window)
	assert.Equal(t, 5, rl.Burst)
	assert.NotNil(t, rl.NewBucket())
}

func TestNewProviderStack_RequiresAPIKey(t *testing.T) {
	_, err := newProviderStack(t.Context(), &config.Config{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "result.json")
	result := &types.ScoreResult{FinalScore: 52.65, MatchedSkills: []types.MatchedSkill{}}

	require.NoError(t, writeJSON(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded types.ScoreResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 52.65, decoded.FinalScore)
}

func TestCheckOutput(t *testing.T) {
	valid := &types.ScoreResult{SkillScore: 50, FinalScore: 30, MatchedSkills: []types.MatchedSkill{}}
	assert.NoError(t, checkOutput(zap.NewNop(), schemafiles.ScoreResult, valid))

	invalid := &types.ScoreResult{SkillScore: 150, MatchedSkills: []types.MatchedSkill{}}
	err := checkOutput(zap.NewNop(), schemafiles.ScoreResult, invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generated result is invalid")

	// a schema that cannot be loaded only warns
	assert.NoError(t, checkOutput(zap.NewNop(), "missing.schema.json", valid))
}

func TestLoadScoreRequest(t *testing.T) {
	dir := t.TempDir()
	reset := func() {
		scoreRequest, scoreJob, scoreApplicant = "", "", ""
	}
	t.Cleanup(reset)

	t.Run("request file", func(t *testing.T) {
		reset()
		scoreRequest = filepath.Join(dir, "request.json")
		require.NoError(t, os.WriteFile(scoreRequest, []byte(`{
			"id": "app-1",
			"job": {"tags": ["Python"], "numOfYearExperience": "3"},
			"applicant": {"skills": ["python"], "yearOfExperience": 2}
		}`), 0644))

		req, err := loadScoreRequest(zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "app-1", req.ID)
		assert.Equal(t, 3.0, req.Job.Requirement().RequiredYears.Value)
	})

	t.Run("separate files", func(t *testing.T) {
		reset()
		scoreJob = filepath.Join(dir, "job.json")
		scoreApplicant = filepath.Join(dir, "applicant.json")
		require.NoError(t, os.WriteFile(scoreJob, []byte(`{"tags": ["SQL"], "description": "Analyst"}`), 0644))
		require.NoError(t, os.WriteFile(scoreApplicant, []byte(`{"skills": ["sql"], "extracted_text": "I query data"}`), 0644))

		req, err := loadScoreRequest(zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{"SQL"}, req.Job.Requirement().Tags)
		assert.Equal(t, "I query data", req.Applicant.Profile().ResumeText)
	})

	t.Run("no input", func(t *testing.T) {
		reset()
		_, err := loadScoreRequest(zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		reset()
		scoreRequest = filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(scoreRequest, []byte(`{`), 0644))
		_, err := loadScoreRequest(zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal JSON")
	})
}
