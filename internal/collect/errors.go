package collect

import (
	"fmt"
)

type ErrorType int

const (
	ErrorTypeCatalog ErrorType = iota
	ErrorTypeManifest
	ErrorTypeHistory
	ErrorTypeOutput
)

// CollectError wraps a failure of one pipeline step. Package is empty for
// run-level failures such as a missing output directory.
type CollectError struct {
	Type    ErrorType
	Package string
	Message string
	Err     error
}

func (e *CollectError) Error() string {
	if e.Package != "" && e.Err != nil {
		return fmt.Sprintf("%s '%s': %v", e.Message, e.Package, e.Err)
	}
	if e.Package != "" {
		return fmt.Sprintf("%s '%s'", e.Message, e.Package)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CollectError) Unwrap() error {
	return e.Err
}

func (e *CollectError) Is(target error) bool {
	if t, ok := target.(*CollectError); ok {
		return e.Type == t.Type
	}
	return false
}

// CatalogError reports a non-success response from the package listing
// endpoint. The whole run aborts on it; nothing is written.
type CatalogError struct {
	StatusCode int
	Body       string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("package listing returned %d: %s", e.StatusCode, e.Body)
}
