package embedding

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is a second-level embedding cache shared across processes.
// Implementations return only the texts they hold; a missing text is not an error.
type Store interface {
	GetEmbeddings(ctx context.Context, model string, texts []string) (map[string][]float32, error)
	SaveEmbeddings(ctx context.Context, model string, vectors map[string][]float32) error
}

// Cached memoizes embeddings per distinct text for the lifetime of the process.
// Cached vectors are exactly what the wrapped provider returned, so caching never changes scores.
type Cached struct {
	next   Provider
	store  Store
	logger *zap.Logger

	mu      sync.RWMutex
	vectors map[string][]float32

	group       singleflight.Group
	fillTimeout time.Duration
}

// CacheOption configures a Cached provider.
type CacheOption func(*Cached)

// WithStore adds a persistent second-level store.
func WithStore(store Store) CacheOption {
	return func(c *Cached) {
		c.store = store
	}
}

// WithLogger sets the logger used for store failures.
func WithLogger(logger *zap.Logger) CacheOption {
	return func(c *Cached) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFillTimeout bounds a shared fill, which outlives the callers waiting on it.
func WithFillTimeout(d time.Duration) CacheOption {
	return func(c *Cached) {
		c.fillTimeout = d
	}
}

// NewCached wraps next with an in-memory cache.
func NewCached(next Provider, opts ...CacheOption) *Cached {
	c := &Cached{
		next:    next,
		logger:  zap.NewNop(),
		vectors: make(map[string][]float32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the wrapped provider's model.
func (c *Cached) Model() string {
	return c.next.Model()
}

// Len returns the number of texts held in memory.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// Embed serves texts from memory, then the store, and embeds the rest in one upstream call.
// Returned vectors are copies; callers may modify them freely.
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if missing := c.missing(texts); len(missing) > 0 {
		if err := c.await(ctx, missing); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := c.vectors[text]
		if !ok {
			return nil, &ProviderError{Model: c.Model(), Message: "embedding missing from cache after fill"}
		}
		out[i] = slices.Clone(v)
	}
	return out, nil
}

// await joins the shared fill for missing. Identical concurrent miss sets share
// one upstream call, which runs detached from any single caller's cancellation;
// each caller stops waiting when its own ctx is done.
func (c *Cached) await(ctx context.Context, missing []string) error {
	key := strings.Join(missing, "\x00")
	ch := c.group.DoChan(key, func() (any, error) {
		fillCtx := context.WithoutCancel(ctx)
		if c.fillTimeout > 0 {
			var cancel context.CancelFunc
			fillCtx, cancel = context.WithTimeout(fillCtx, c.fillTimeout)
			defer cancel()
		}
		return nil, c.fill(fillCtx, missing)
	})
	return c.wait(ctx, ch)
}

func (c *Cached) wait(ctx context.Context, ch <-chan singleflight.Result) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// missing returns the distinct texts not held in memory, in first-seen order.
func (c *Cached) missing(texts []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool, len(texts))
	var missing []string
	for _, text := range texts {
		if seen[text] {
			continue
		}
		seen[text] = true
		if _, ok := c.vectors[text]; !ok {
			missing = append(missing, text)
		}
	}
	return missing
}

func (c *Cached) fill(ctx context.Context, texts []string) error {
	found := make(map[string][]float32, len(texts))
	if c.store != nil {
		stored, err := c.store.GetEmbeddings(ctx, c.Model(), texts)
		if err != nil {
			c.logger.Warn("embedding store lookup failed", zap.Error(err), zap.Int("texts", len(texts)))
		} else {
			for text, v := range stored {
				found[text] = v
			}
		}
	}

	var toEmbed []string
	for _, text := range texts {
		if _, ok := found[text]; !ok {
			toEmbed = append(toEmbed, text)
		}
	}

	fresh := make(map[string][]float32, len(toEmbed))
	if len(toEmbed) > 0 {
		vectors, err := Embed(ctx, c.next, toEmbed)
		if err != nil {
			return err
		}
		for i, text := range toEmbed {
			fresh[text] = vectors[i]
			found[text] = vectors[i]
		}
	}

	c.mu.Lock()
	for text, v := range found {
		c.vectors[text] = v
	}
	c.mu.Unlock()

	if c.store != nil && len(fresh) > 0 {
		if err := c.store.SaveEmbeddings(ctx, c.Model(), fresh); err != nil {
			c.logger.Warn("embedding store save failed", zap.Error(err), zap.Int("texts", len(fresh)))
		}
	}

	c.logger.Debug("embedding cache fill",
		zap.Int("requested", len(texts)),
		zap.Int("from_store", len(texts)-len(toEmbed)),
		zap.Int("embedded", len(toEmbed)))
	return nil
}
