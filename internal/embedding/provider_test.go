package embedding

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "scaled", a: []float32{1, 2, 3}, b: []float32{2, 4, 6}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1}, want: 0},
		{name: "empty", a: []float32{}, b: []float32{}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float32{0.3, -0.2, 0.9}
	b := []float32{0.1, 0.4, -0.5}
	assert.Equal(t, Cosine(a, b), Cosine(b, a))
}

func TestCosine_Bounded(t *testing.T) {
	a := []float32{0.1, 0.1, 0.1}
	sim := Cosine(a, a)
	assert.LessOrEqual(t, sim, 1.0)
	assert.False(t, math.IsNaN(sim))
}

func TestBestMatch(t *testing.T) {
	query := []float32{1, 0}
	candidates := [][]float32{{0, 1}, {1, 0.1}, {1, 0.1}}

	idx, score := BestMatch(query, candidates)
	assert.Equal(t, 1, idx, "ties keep the earliest candidate")
	assert.Greater(t, score, 0.9)
}

func TestBestMatch_NoCandidates(t *testing.T) {
	idx, score := BestMatch([]float32{1}, nil)
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0.0, score)
}

type countingProvider struct {
	vectors map[string][]float32
	calls   [][]string
	err     error
	short   bool
}

func (p *countingProvider) Model() string { return "test-model" }

func (p *countingProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	p.calls = append(p.calls, append([]string{}, texts...))
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, ok := p.vectors[text]
		if !ok {
			v = []float32{float32(len(text)), 1}
		}
		out = append(out, v)
	}
	if p.short {
		out = out[:len(out)-1]
	}
	return out, nil
}

func TestEmbed_EmptyInputSkipsProvider(t *testing.T) {
	p := &countingProvider{}
	vectors, err := Embed(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Empty(t, p.calls)
}

func TestEmbed_WrongVectorCount(t *testing.T) {
	p := &countingProvider{short: true}
	_, err := Embed(context.Background(), p, []string{"a", "b"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "test-model", perr.Model)
}

func TestEmbed_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	p := &countingProvider{err: boom}
	_, err := Embed(context.Background(), p, []string{"a"})
	assert.ErrorIs(t, err, boom)
}
