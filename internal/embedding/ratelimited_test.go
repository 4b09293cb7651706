package embedding

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/applicant-scorer/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimited_NilBucketPassesThrough(t *testing.T) {
	p := &countingProvider{}
	assert.Same(t, p, NewRateLimited(p, nil))
}

func TestRateLimited_Delegates(t *testing.T) {
	p := &countingProvider{}
	limited := NewRateLimited(p, ratelimit.NewTokenBucket(2, 1))

	assert.Equal(t, "test-model", limited.Model())

	vectors, err := limited.Embed(context.Background(), []string{"go"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Equal(t, [][]string{{"go"}}, p.calls)
}

func TestRateLimited_CanceledWhileWaiting(t *testing.T) {
	p := &countingProvider{}
	// one token, no refill
	limited := NewRateLimited(p, ratelimit.NewTokenBucket(1, 0))

	_, err := limited.Embed(context.Background(), []string{"go"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = limited.Embed(ctx, []string{"sql"})
	require.Error(t, err)

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "test-model", pe.Model)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, p.calls, 1)
}

func TestRateLimited_OneTokenPerUpstreamRequest(t *testing.T) {
	p := &countingProvider{}
	bucket := ratelimit.NewTokenBucket(3, 0)
	limited := NewRateLimited(p, bucket)

	texts := make([]string, 2*maxBatchSize+50)
	for i := range texts {
		texts[i] = fmt.Sprintf("skill-%d", i)
	}

	vectors, err := limited.Embed(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))
	assert.Equal(t, []float32{float32(len(texts[len(texts)-1])), 1}, vectors[len(vectors)-1])

	require.Len(t, p.calls, 3)
	assert.Len(t, p.calls[0], maxBatchSize)
	assert.Len(t, p.calls[1], maxBatchSize)
	assert.Len(t, p.calls[2], 50)
	assert.Equal(t, 0, bucket.Remaining())
}

func TestRateLimited_EmptyInputTakesNoToken(t *testing.T) {
	p := &countingProvider{}
	bucket := ratelimit.NewTokenBucket(1, 0)

	vectors, err := NewRateLimited(p, bucket).Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Empty(t, p.calls)
	assert.Equal(t, 1, bucket.Remaining())
}
