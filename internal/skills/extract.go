// Package skills extracts skill names from resume and job text with an LLM.
// It backs the upstream skill extraction step; the scoring engine consumes its
// output but never calls it.
package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/applicant-scorer/internal/ingestion"
	"github.com/jonathan/applicant-scorer/internal/llm"
	"github.com/jonathan/applicant-scorer/internal/parsing"
	"github.com/jonathan/applicant-scorer/internal/prompts"
)

// Source selects the extraction prompt.
type Source string

const (
	SourceResume Source = "resume"
	SourceJob    Source = "job"
)

const (
	// maxInputChars bounds the text sent to the model.
	maxInputChars = 30000
	maxSkills     = 50
)

// ParseError reports an LLM response that could not be read as a skill list.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

type extractionResponse struct {
	Skills []string `json:"skills"`
}

// ExtractSkills asks the LLM for the skills mentioned in text and returns them
// normalized, de-duplicated and sorted. Blank text and extraction placeholders
// yield an empty list without a model call.
func ExtractSkills(ctx context.Context, client llm.Client, text string, source Source) ([]string, error) {
	text = strings.TrimSpace(text)
	if parsing.IsBlank(text) || ingestion.IsPlaceholder(text) {
		return []string{}, nil
	}
	if client == nil {
		return nil, fmt.Errorf("LLM client is required")
	}

	prompt, err := buildPrompt(text, source)
	if err != nil {
		return nil, err
	}

	response, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}

	skills, err := parseSkillsResponse(response)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// buildPrompt creates the extraction prompt for the given source
func buildPrompt(text string, source Source) (string, error) {
	var key, schemaName string
	switch source {
	case SourceResume, "":
		key, schemaName = prompts.KeyResumeSkills, "ResumeSkills"
	case SourceJob:
		key, schemaName = prompts.KeyJobSkills, "JobSkills"
	default:
		return "", fmt.Errorf("unknown skill source %q", source)
	}

	systemPrompt, err := prompts.Render(prompts.ExtractionFile, key,
		map[string]string{"MaxSkills": strconv.Itoa(maxSkills)})
	if err != nil {
		return "", err
	}
	if runes := []rune(text); len(runes) > maxInputChars {
		text = string(runes[:maxInputChars])
	}
	return llm.BuildExtractionPrompt(llm.SkillListSchema(schemaName, systemPrompt), text), nil
}

// parseSkillsResponse accepts {"skills": [...]} or a bare JSON array.
func parseSkillsResponse(response string) ([]string, error) {
	cleaned := llm.CleanJSONBlock(response)
	if cleaned == "" {
		return nil, &ParseError{Message: "empty LLM response"}
	}

	var raw []string
	if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
			return nil, &ParseError{Message: "invalid skills array", Cause: err}
		}
	} else {
		var resp extractionResponse
		if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
			return nil, &ParseError{Message: "invalid skills object", Cause: err}
		}
		raw = resp.Skills
	}

	return parsing.NormalizeSkillSet(raw), nil
}
