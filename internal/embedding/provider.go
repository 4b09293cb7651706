// Package embedding provides the similarity provider used by the scoring engine:
// text embeddings from a fixed sentence-embedding model plus cosine similarity.
package embedding

import (
	"context"
	"math"
)

// Provider turns texts into fixed-length vectors.
// Implementations must be safe for concurrent use and must return exactly one
// vector per input text, in input order. Returned vectors belong to the caller.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Model identifies the embedding model; vectors from different models are not comparable.
	Model() string
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Mismatched lengths, empty vectors and zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// floating point can overshoot by an ulp
	return math.Max(-1, math.Min(1, sim))
}

// BestMatch returns the index of the candidate most similar to query and its similarity.
// Ties keep the earliest candidate. Returns -1 when candidates is empty.
func BestMatch(query []float32, candidates [][]float32) (int, float64) {
	bestIdx := -1
	bestScore := math.Inf(-1)
	for i, c := range candidates {
		score := Cosine(query, c)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return -1, 0
	}
	return bestIdx, bestScore
}

// Embed is a helper that embeds texts and checks the provider honoured its contract.
func Embed(ctx context.Context, p Provider, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	vectors, err := p.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, &ProviderError{
			Model:   p.Model(),
			Message: "provider returned wrong number of vectors",
		}
	}
	return vectors, nil
}
