package prune

import (
	"fmt"
)

// ErrorType represents different types of errors that can occur during prune operations.
type ErrorType int

const (
	// ErrorTypeCatalog indicates the catalog could not be read.
	ErrorTypeCatalog ErrorType = iota
	// ErrorTypeFilesystem indicates a file system operation failed.
	ErrorTypeFilesystem
)

// PruneError represents an error that occurs during prune operations.
type PruneError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *PruneError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PruneError) Unwrap() error {
	return e.Err
}

func (e *PruneError) Is(target error) bool {
	t, ok := target.(*PruneError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}
