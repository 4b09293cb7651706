package scoring

import (
	"context"
	"strings"

	"github.com/jonathan/applicant-scorer/internal/embedding"
)

// ResumeRelevance returns the semantic similarity between a job description and a resume, in [0, 1].
// Either text being blank yields 0 without calling the provider. Each text is embedded whole.
// Negative cosine similarity is clamped to 0: an unrelated resume scores no relevance, never a negative percentage.
func ResumeRelevance(ctx context.Context, p embedding.Provider, description, resumeText string) (float64, error) {
	description = strings.TrimSpace(description)
	resumeText = strings.TrimSpace(resumeText)
	if description == "" || resumeText == "" {
		return 0.0, nil
	}

	vectors, err := embedding.Embed(ctx, p, []string{description, resumeText})
	if err != nil {
		return 0, err
	}

	return clamp01(embedding.Cosine(vectors[0], vectors[1])), nil
}
