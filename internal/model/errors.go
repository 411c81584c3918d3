package model

import (
	"errors"
	"fmt"
)

// Stage failure taxonomy. Stage-local failures degrade into flagged partial
// results; these sentinels let callers classify what went wrong.
var (
	ErrValidation    = errors.New("validation failure")
	ErrFactCheck     = errors.New("fact check failure")
	ErrConfidence    = errors.New("confidence scoring failure")
	ErrContradiction = errors.New("contradiction detection failure")
	ErrSystem        = errors.New("system failure")
)

// StageError wraps an error with the stage it escaped from.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError builds a StageError wrapping both the stage sentinel and
// the underlying cause.
func NewStageError(stage string, sentinel, cause error) *StageError {
	return &StageError{Stage: stage, Err: fmt.Errorf("%w: %w", sentinel, cause)}
}
