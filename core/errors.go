package core

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the bytes are not a readable spreadsheet container.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrEmptySource indicates the source table produced no usable rows.
var ErrEmptySource = errors.New("no source rows to process")

// ErrEmptyInput indicates a merge was requested over zero documents.
var ErrEmptyInput = errors.New("no documents to merge")

// ErrNotIdle indicates Run was called on a processor that has not been reset.
var ErrNotIdle = errors.New("processor is not idle")

// DecodeError reports a container that could not be decoded.
type DecodeError struct {
	Name   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %q (%s): %v", e.Name, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Pipeline stages reported by RowError.
const (
	StageClone      = "clone"
	StageFill       = "fill"
	StageSubstitute = "substitute"
	StageEncode     = "encode"
)

// RowError represents a failure while processing one source row.
type RowError struct {
	Index int // zero-based position in the source rows
	Name  string
	Stage string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s) failed during %s: %v", e.Index+1, e.Name, e.Stage, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError creates a new RowError.
func NewRowError(index int, name, stage string, err error) *RowError {
	return &RowError{
		Index: index,
		Name:  name,
		Stage: stage,
		Err:   err,
	}
}
