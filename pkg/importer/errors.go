package importer

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is matched by every *MalformedRecordError
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError describes a data row that could not be turned into a
// node. Line is 1-based and counts the header line when there is one.
type MalformedRecordError struct {
	Line   int
	Want   int
	Got    int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: expected %d fields, got %d", e.Line, e.Want, e.Got)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// RowError wraps a tree construction failure with the row that caused it
type RowError struct {
	Line int
	ID   int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: node %d: %v", e.Line, e.ID, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
