package embedding

import (
	"context"

	"github.com/jonathan/applicant-scorer/internal/ratelimit"
)

// RateLimited paces upstream embedding calls through a token bucket.
type RateLimited struct {
	next   Provider
	bucket *ratelimit.TokenBucket
}

// NewRateLimited wraps next. A nil bucket disables limiting.
func NewRateLimited(next Provider, bucket *ratelimit.TokenBucket) Provider {
	if bucket == nil {
		return next
	}
	return &RateLimited{next: next, bucket: bucket}
}

// Model returns the wrapped provider's model.
func (r *RateLimited) Model() string {
	return r.next.Model()
}

// Embed splits texts into upstream-request-sized chunks and takes one token per chunk.
func (r *RateLimited) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))
		if err := r.bucket.Wait(ctx); err != nil {
			return nil, &ProviderError{Model: r.Model(), Message: "rate limit wait aborted", Cause: err}
		}
		chunk, err := r.next.Embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, chunk...)
	}
	return vectors, nil
}
