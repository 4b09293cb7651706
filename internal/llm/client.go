package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/applicant-scorer/internal/logger"
	"github.com/jonathan/applicant-scorer/internal/ratelimit"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// responsePreviewChars bounds the model response echoed in debug logs.
const responsePreviewChars = 200

// Client generates JSON answers for extraction prompts.
// The scoring engine never uses it; it backs the skill extraction collaborator.
type Client interface {
	// GenerateJSON returns the model's JSON answer with any code fences removed.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the model name configured for a tier.
	GetModel(tier ModelTier) string
	Close() error
}

// ClientOption configures a GeminiClient.
type ClientOption func(*GeminiClient)

// WithLimiter paces generation requests through bucket. Nil disables pacing.
func WithLimiter(bucket *ratelimit.TokenBucket) ClientOption {
	return func(c *GeminiClient) {
		c.limiter = bucket
	}
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *GeminiClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string, opts ...ClientOption) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey, opts...)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client  *genai.Client
	config  *Config
	limiter *ratelimit.TokenBucket
	logger  *zap.Logger
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string, opts ...ClientOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &GeminiClient{
		client: client,
		config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GenerateJSON asks the tier's model for a JSON response.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &APIError{Model: modelName, Message: "rate limit wait aborted", Cause: err}
		}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	c.logger.Debug("generating JSON", zap.String("model", modelName), zap.Int("prompt_chars", len(prompt)))
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &APIError{Model: modelName, Message: "generate content failed", Cause: err}
	}

	text, err := responseText(resp)
	if err != nil {
		return "", &APIError{Model: modelName, Message: "unusable response", Cause: err}
	}
	c.logger.Debug("generated JSON", zap.String("model", modelName),
		zap.String("response", logger.TruncateForLog(text, responsePreviewChars)))
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate.
// Resumes occasionally trip safety filters, so blocked prompts and candidates are reported as such.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("empty response")
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("prompt blocked: %s", fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("candidate blocked: %s", candidate.FinishReason)
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return sb.String(), nil
}
