package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// Metadata contains metadata about an extracted resume
type Metadata struct {
	Source     string `json:"source"`
	Format     string `json:"format,omitempty"`
	Timestamp  string `json:"timestamp"` // RFC3339 format
	Hash       string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Characters int    `json:"characters"`
	Error      string `json:"error,omitempty"` // Set when the text is a placeholder
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:     source,
		Format:     FormatForPath(source),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Characters: utf8.RuneCountInString(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

// IngestFromFile extracts a resume and returns its text with metadata.
// Extraction failures do not fail ingestion: the text becomes the placeholder
// and the metadata records the error.
func IngestFromFile(path string) (string, *Metadata) {
	text, err := ExtractResumeText(path)
	text = TextOrPlaceholder(text, err)
	metadata := NewMetadata(text, path)
	if err != nil {
		metadata.Error = err.Error()
	}
	return text, metadata
}

// WriteOutput writes the extracted text and metadata as <base>.txt and <base>.meta.json
func WriteOutput(outDir, base, text string, metadata *Metadata) error {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, base+".txt")
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	metaPath := filepath.Join(outDir, base+".meta.json")
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
