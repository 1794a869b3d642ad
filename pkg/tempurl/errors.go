package tempurl

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrObjectNotFound indicates the object has no catalog entry
	ErrObjectNotFound = errors.New("object not found")

	// ErrObjectNotAvailable indicates the object exists but is not in a
	// downloadable state
	ErrObjectNotAvailable = errors.New("object not available")

	// ErrObjectUnacceptable indicates the object metadata lacks a
	// well-formed identifier
	ErrObjectUnacceptable = errors.New("object does not have a valid object id")

	// ErrMissingCredential indicates no endpoint URL or signing key could be
	// resolved, from configuration or from the credential source
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidConfiguration indicates the signing configuration violates
	// the duration or sharding invariants
	ErrInvalidConfiguration = errors.New("invalid signing configuration")
)

// IssueError represents an error raised while issuing a URL for an object
type IssueError struct {
	ObjectID uuid.UUID
	Op       string
	Err      error
}

func (e *IssueError) Error() string {
	return fmt.Sprintf("issue operation %s failed for object %s: %v", e.Op, e.ObjectID, e.Err)
}

func (e *IssueError) Unwrap() error {
	return e.Err
}
