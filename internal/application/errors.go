package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNoMarks       = errors.New("no marks")
	ErrFileMissing   = errors.New("file missing")
	ErrDuplicateMark = errors.New("mark already exists at this position")
)

// ValidationError represents a rejected argument with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// JumpError represents a failed jump to a mark's position
type JumpError struct {
	File string
	Row  int
	Err  error
}

func (e *JumpError) Error() string {
	return fmt.Sprintf("cannot jump to %s:%d: %v", e.File, e.Row, e.Err)
}

func (e *JumpError) Unwrap() error {
	return e.Err
}
