// Package schemas holds the JSON Schemas for scorer inputs and outputs.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	ScoreRequest = "score_request.schema.json"
	BatchRequest = "batch_request.schema.json"
	ScoreResult  = "score_result.schema.json"
	BatchResult  = "batch_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema file.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s not found: %w", name, err)
	}
	return data, nil
}

// Names lists every embedded schema file.
func Names() []string {
	return []string{ScoreRequest, BatchRequest, ScoreResult, BatchResult}
}
