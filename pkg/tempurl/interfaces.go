package tempurl

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Catalog defines the interface for object metadata lookup
type Catalog interface {
	// GetObject retrieves the catalog entry for an object.
	// Returns ErrObjectNotFound when no entry exists.
	GetObject(ctx context.Context, id uuid.UUID) (*ObjectInfo, error)
}

// CredentialSource defines the interface for resolving storage credentials
// that are not explicitly configured. A value that cannot be resolved is
// reported as ("", nil); the service maps absence to ErrMissingCredential.
type CredentialSource interface {
	// Endpoint returns the storage endpoint URL
	Endpoint(ctx context.Context) (string, error)

	// Account returns the storage account name
	Account(ctx context.Context) (string, error)

	// SigningKey returns the shared signing secret for an account
	SigningKey(ctx context.Context, account string) (string, error)
}

// URLSigner defines the interface for the signing primitive. The returned
// path carries the signature and a query parameter named by ExpiresParam
// holding the absolute expiry as unix seconds.
type URLSigner interface {
	Sign(method, path, key string, expiresIn time.Duration) (string, error)

	// ExpiresParam returns the name of the expiry query parameter embedded
	// in signed paths. The service parses the cache deadline out of it.
	ExpiresParam() string
}

// EventSink defines the interface for URL lifecycle event handling.
// Sink failures never fail the issuing operation.
type EventSink interface {
	// URLIssued is fired when a fresh URL is signed
	URLIssued(ctx context.Context, objectID uuid.UUID, url string, expiresAt time.Time) error

	// URLReused is fired when a cached URL is returned
	URLReused(ctx context.Context, objectID uuid.UUID, url string) error

	// URLEvicted is fired for each entry removed by the expiry sweep
	URLEvicted(ctx context.Context, objectID uuid.UUID) error
}

// Metrics receives cache observability callbacks. Implementations must be
// safe for concurrent use.
type Metrics interface {
	Hit()
	Miss()
	Evict()
	Size(entries int)
}
