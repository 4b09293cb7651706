package llm

import "fmt"

// APIError represents a failed or unusable generation request.
type APIError struct {
	Model   string
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm %s: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("llm %s: %s", e.Model, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
