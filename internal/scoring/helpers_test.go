package scoring

import (
	"context"
	"hash/fnv"
	"math"
	"sync"
)

// stubProvider returns fixed vectors per text; unknown texts get a stable hash-derived vector.
type stubProvider struct {
	vectors map[string][]float32
	err     error

	mu    sync.Mutex
	calls [][]string
}

func newStub(vectors map[string][]float32) *stubProvider {
	return &stubProvider{vectors: vectors}
}

func (s *stubProvider) Model() string { return "stub" }

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	s.calls = append(s.calls, append([]string{}, texts...))
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := s.vectors[text]; ok {
			out[i] = v
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(text))
		sum := h.Sum32()
		out[i] = []float32{float32(sum%97) + 1, float32(sum%89) + 1, float32(sum%83) + 1}
	}
	return out, nil
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// unitWithCosine returns a unit vector whose cosine with (1, 0, 0) is c.
func unitWithCosine(c float64) []float32 {
	return []float32{float32(c), float32(math.Sqrt(1 - c*c)), 0}
}

// scenarioVectors sets up python ~ "python programming" at 0.9 and sql at 0.1.
func scenarioVectors() map[string][]float32 {
	return map[string][]float32{
		"python programming": {1, 0, 0},
		"python":             unitWithCosine(0.9),
		"sql":                {0.1, 0, float32(math.Sqrt(0.99))},
	}
}
