package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/applicant-scorer/internal/llm"
	"google.golang.org/api/option"
)

// maxBatchSize is the largest number of texts accepted by one BatchEmbedContents request.
const maxBatchSize = 100

// GeminiProvider implements Provider with a Gemini embedding model.
// The client is created once and shared; the model handle is never mutated after construction.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	name   string
}

// NewGeminiProvider creates a Gemini-backed provider using the embedding model from config.
func NewGeminiProvider(ctx context.Context, config *llm.Config, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = llm.DefaultConfig()
	}
	if config.EmbeddingModel == "" {
		return nil, fmt.Errorf("no embedding model configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.EmbeddingModel(config.EmbeddingModel)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiProvider{
		client: client,
		model:  model,
		name:   config.EmbeddingModel,
	}, nil
}

// Model returns the embedding model name.
func (p *GeminiProvider) Model() string {
	return p.name
}

// Embed embeds texts in as few requests as the API allows.
func (p *GeminiProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		batch := p.model.NewBatch()
		for _, text := range texts[start:end] {
			batch = batch.AddContent(genai.Text(text))
		}

		resp, err := p.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, &ProviderError{Model: p.name, Message: "batch embed request failed", Cause: err}
		}
		if len(resp.Embeddings) != end-start {
			return nil, &ProviderError{
				Model:   p.name,
				Message: fmt.Sprintf("expected %d embeddings, got %d", end-start, len(resp.Embeddings)),
			}
		}
		for _, e := range resp.Embeddings {
			if e == nil || len(e.Values) == 0 {
				return nil, &ProviderError{Model: p.name, Message: "empty embedding in response"}
			}
			vectors = append(vectors, e.Values)
		}
	}
	return vectors, nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
