package tree

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree construction.
var (
	// ErrMissingParent is returned when a node names a parent that has not
	// been added yet. Parents must always be added before their children.
	ErrMissingParent = errors.New("parent node not found")

	// ErrRootReserved is returned when a caller tries to add a node with the
	// sentinel root's id.
	ErrRootReserved = errors.New("id is reserved for the sentinel root")
)

// MissingParentError reports which node referenced which unknown parent
type MissingParentError struct {
	ID     int
	Parent int
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("node %d: parent %d not found", e.ID, e.Parent)
}

// Unwrap lets errors.Is match ErrMissingParent
func (e *MissingParentError) Unwrap() error {
	return ErrMissingParent
}
