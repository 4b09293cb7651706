package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr string
	}{
		{
			name:    "nil response",
			wantErr: "empty response",
		},
		{
			name: "prompt blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			},
			wantErr: "prompt blocked",
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: "no candidates",
		},
		{
			name: "candidate blocked",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonSafety},
			}},
			wantErr: "candidate blocked",
		},
		{
			name: "no content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonStop},
			}},
			wantErr: "no content",
		},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"skills": `), genai.Text(`["go"]}`)}}},
			}},
			want: `{"skills": ["go"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_Errors(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")

	_, err = NewClient(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestAPIError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &APIError{Model: "gemini-lite", Message: "generate content failed", Cause: cause}

	assert.Equal(t, "llm gemini-lite: generate content failed: quota exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "llm gemini-lite: unusable response", (&APIError{Model: "gemini-lite", Message: "unusable response"}).Error())
}
