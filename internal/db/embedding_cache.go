package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultEmbeddingCacheTTL is the default time-to-live for cached embeddings (30 days)
const DefaultEmbeddingCacheTTL = 30 * 24 * time.Hour

const embeddingCacheSchema = `
CREATE TABLE IF NOT EXISTS embedding_cache (
	model      TEXT        NOT NULL,
	text_hash  TEXT        NOT NULL,
	text       TEXT        NOT NULL,
	vector     REAL[]      NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ,
	PRIMARY KEY (model, text_hash)
);
CREATE INDEX IF NOT EXISTS idx_embedding_cache_expires_at ON embedding_cache (expires_at);
`

// CachedEmbedding is one row of the embedding cache
type CachedEmbedding struct {
	Model     string     `json:"model"`
	TextHash  string     `json:"text_hash"`
	Text      string     `json:"text"`
	Vector    []float32  `json:"vector"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// IsExpired returns true if the cached embedding has expired
func (e *CachedEmbedding) IsExpired() bool {
	if e.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*e.ExpiresAt)
}

// HashText creates a SHA-256 hash of text for use as a cache key
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// hashIndex maps each distinct text's hash back to the text.
func hashIndex(texts []string) (map[string]string, []string) {
	index := make(map[string]string, len(texts))
	hashes := make([]string, 0, len(texts))
	for _, text := range texts {
		h := HashText(text)
		if _, ok := index[h]; ok {
			continue
		}
		index[h] = text
		hashes = append(hashes, h)
	}
	return index, hashes
}

// expiryFor returns the expiry timestamp for a row written at now, or nil when ttl disables expiry.
func expiryFor(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := now.Add(ttl)
	return &t
}

// EnsureSchema creates the embedding cache table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, embeddingCacheSchema); err != nil {
		return fmt.Errorf("failed to create embedding cache schema: %w", err)
	}
	return nil
}

// GetEmbeddings returns the unexpired cached vectors for texts, keyed by text.
// Texts with no cached vector are absent from the result.
func (db *DB) GetEmbeddings(ctx context.Context, model string, texts []string) (map[string][]float32, error) {
	result := make(map[string][]float32)
	if len(texts) == 0 {
		return result, nil
	}

	index, hashes := hashIndex(texts)
	rows, err := db.pool.Query(ctx,
		`SELECT text_hash, vector FROM embedding_cache
		 WHERE model = $1 AND text_hash = ANY($2)
		   AND (expires_at IS NULL OR expires_at > NOW())`,
		model, hashes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query embedding cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hash string
		var vector []float32
		if err := rows.Scan(&hash, &vector); err != nil {
			return nil, fmt.Errorf("failed to scan cached embedding: %w", err)
		}
		if text, ok := index[hash]; ok && len(vector) > 0 {
			result[text] = vector
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}
	return result, nil
}

// GetCachedEmbedding retrieves a single cache row, or nil if not present
func (db *DB) GetCachedEmbedding(ctx context.Context, model, text string) (*CachedEmbedding, error) {
	e := &CachedEmbedding{}
	err := db.pool.QueryRow(ctx,
		`SELECT model, text_hash, text, vector, created_at, expires_at
		 FROM embedding_cache WHERE model = $1 AND text_hash = $2`,
		model, HashText(text),
	).Scan(&e.Model, &e.TextHash, &e.Text, &e.Vector, &e.CreatedAt, &e.ExpiresAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached embedding: %w", err)
	}
	return e, nil
}

// SaveEmbeddings upserts vectors keyed by text for the given model
func (db *DB) SaveEmbeddings(ctx context.Context, model string, vectors map[string][]float32) error {
	if len(vectors) == 0 {
		return nil
	}

	expiresAt := expiryFor(time.Now(), db.cacheTTL)
	batch := &pgx.Batch{}
	for text, vector := range vectors {
		batch.Queue(
			`INSERT INTO embedding_cache (model, text_hash, text, vector, expires_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (model, text_hash) DO UPDATE SET
				vector = EXCLUDED.vector,
				created_at = NOW(),
				expires_at = EXCLUDED.expires_at`,
			model, HashText(text), text, vector, expiresAt,
		)
	}

	br := db.pool.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()
	for range vectors {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save embedding: %w", err)
		}
	}
	return nil
}

// PruneExpired deletes expired cache rows and returns how many were removed
func (db *DB) PruneExpired(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM embedding_cache WHERE expires_at IS NOT NULL AND expires_at <= NOW()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune embedding cache: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountEmbeddings returns the number of cached rows for model, or all models when model is empty
func (db *DB) CountEmbeddings(ctx context.Context, model string) (int64, error) {
	var n int64
	var err error
	if model == "" {
		err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM embedding_cache`).Scan(&n)
	} else {
		err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM embedding_cache WHERE model = $1`, model).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count cached embeddings: %w", err)
	}
	return n, nil
}
