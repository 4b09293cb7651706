package embedding

import "fmt"

// ProviderError represents a failure inside the similarity provider.
type ProviderError struct {
	Model   string
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding provider %s: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding provider %s: %s", e.Model, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
