package scoring

import (
	"context"
	"errors"
	"fmt"
)

// Stage names one step of the scoring pipeline.
type Stage string

// Scoring stages, in evaluation order.
const (
	StageSkillMatch      Stage = "skill_match"
	StageResumeRelevance Stage = "resume_relevance"
	StageExperienceMatch Stage = "experience_match"
)

// StageError reports which stage failed. The message stays generic so provider
// internals never reach callers; the cause is available through errors.Unwrap.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	switch {
	case errors.Is(e.Cause, context.Canceled):
		return fmt.Sprintf("scoring failed at %s stage: cancelled", e.Stage)
	case errors.Is(e.Cause, context.DeadlineExceeded):
		return fmt.Sprintf("scoring failed at %s stage: timed out", e.Stage)
	default:
		return fmt.Sprintf("scoring failed at %s stage: similarity provider error", e.Stage)
	}
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// BatchError reports the first failed request of a batch run.
type BatchError struct {
	Index int
	ID    string
	Cause error
}

func (e *BatchError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("batch request %d (%s): %v", e.Index, e.ID, e.Cause)
	}
	return fmt.Sprintf("batch request %d: %v", e.Index, e.Cause)
}

func (e *BatchError) Unwrap() error {
	return e.Cause
}
