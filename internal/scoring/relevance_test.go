package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeRelevance_BlankInputs(t *testing.T) {
	tests := []struct {
		name        string
		description string
		resume      string
	}{
		{name: "empty description", description: "", resume: "Python developer"},
		{name: "whitespace description", description: "  \n", resume: "Python developer"},
		{name: "empty resume", description: "Backend role", resume: ""},
		{name: "both empty", description: "", resume: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newStub(nil)
			score, err := ResumeRelevance(context.Background(), p, tt.description, tt.resume)
			require.NoError(t, err)
			assert.Equal(t, 0.0, score)
			assert.Zero(t, p.callCount())
		})
	}
}

func TestResumeRelevance_Cosine(t *testing.T) {
	p := newStub(map[string][]float32{
		"backend role":     {1, 0, 0},
		"python developer": unitWithCosine(0.8),
	})

	score, err := ResumeRelevance(context.Background(), p, " backend role ", "python developer")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, score, 1e-6)
	require.Equal(t, 1, p.callCount(), "both texts embedded in one call")
	assert.Equal(t, []string{"backend role", "python developer"}, p.calls[0])
}

func TestResumeRelevance_NegativeClampedToZero(t *testing.T) {
	p := newStub(map[string][]float32{
		"job":    {1, 0},
		"resume": {-1, 0},
	})

	score, err := ResumeRelevance(context.Background(), p, "job", "resume")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestResumeRelevance_ProviderError(t *testing.T) {
	boom := errors.New("model unavailable")
	p := &stubProvider{err: boom}

	_, err := ResumeRelevance(context.Background(), p, "job", "resume")
	assert.ErrorIs(t, err, boom)
}
