package tempurl

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ObjectStatus represents the lifecycle status of a catalog object
type ObjectStatus string

const (
	ObjectStatusQueued      ObjectStatus = "queued"
	ObjectStatusUploading   ObjectStatus = "uploading"
	ObjectStatusAvailable   ObjectStatus = "available"
	ObjectStatusDeactivated ObjectStatus = "deactivated"
	ObjectStatusDeleted     ObjectStatus = "deleted"
)

// IsValid returns true if the status is a known object status
func (s ObjectStatus) IsValid() bool {
	switch s {
	case ObjectStatusQueued, ObjectStatusUploading, ObjectStatusAvailable,
		ObjectStatusDeactivated, ObjectStatusDeleted:
		return true
	}
	return false
}

// Available returns true if the object can be downloaded
func (s ObjectStatus) Available() bool {
	return s == ObjectStatusAvailable
}

// String implements the Stringer interface
func (s ObjectStatus) String() string {
	return string(s)
}

// ObjectInfo is the catalog entry for a stored object
type ObjectInfo struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Checksum  string       `json:"checksum,omitempty"`
	Size      int64        `json:"size"`
	Status    ObjectStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// IssuedURL is the result of a successful URL issuance
type IssuedURL struct {
	ObjectID  uuid.UUID `json:"object_id"`
	URL       string    `json:"url"`
	Container string    `json:"container"`
	ExpiresAt time.Time `json:"expires_at"`
	FromCache bool      `json:"from_cache"`
}

// SigningConfig is the process-wide configuration snapshot consumed on every
// issue call. The service never mutates it.
type SigningConfig struct {
	// CacheEnabled turns the URL cache on. When disabled every call signs.
	CacheEnabled bool

	// URLDuration is how long an issued URL remains valid.
	URLDuration time.Duration

	// ExpectedStartDelay is how long the caller is expected to wait before
	// first use of the URL. A cached URL expiring inside this window is
	// treated as a miss.
	ExpectedStartDelay time.Duration

	// ContainerSeedLength selects container sharding: 0 means a single
	// container, 1..32 selects seeded multi-container mode.
	ContainerSeedLength int

	// ContainerBaseName is the container name, or the prefix in seeded mode.
	ContainerBaseName string

	// Account, APIVersion and EndpointURL build the storage path. Empty
	// Account or EndpointURL fall back to the CredentialSource.
	Account     string
	APIVersion  string
	EndpointURL string

	// SigningKey is the shared secret. Empty falls back to the
	// CredentialSource's per-account key.
	SigningKey string
}

// Validate checks the duration and sharding invariants. It is cheap and is
// called on every issue call before any signing attempt.
func (c SigningConfig) Validate() error {
	if c.URLDuration < c.ExpectedStartDelay {
		return fmt.Errorf("%w: url duration %s must be greater than or equal to the expected start delay %s, otherwise the URL may expire before the download starts",
			ErrInvalidConfiguration, c.URLDuration, c.ExpectedStartDelay)
	}
	if c.ContainerSeedLength < 0 || c.ContainerSeedLength > 32 {
		return fmt.Errorf("%w: container seed length must be between 0 and 32, got %d",
			ErrInvalidConfiguration, c.ContainerSeedLength)
	}
	return nil
}

// CachedEntry is a read-only snapshot of one cache entry
type CachedEntry struct {
	ObjectID  uuid.UUID `json:"object_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CacheStats is a point-in-time snapshot of cache counters
type CacheStats struct {
	Entries       int        `json:"entries"`
	Hits          uint64     `json:"hits"`
	Misses        uint64     `json:"misses"`
	Evictions     uint64     `json:"evictions"`
	SoonestExpiry *time.Time `json:"soonest_expiry,omitempty"`
	LatestExpiry  *time.Time `json:"latest_expiry,omitempty"`
}
