package tempurl

import "github.com/google/uuid"

// Request DTOs

// IssueURLRequest contains parameters for issuing a signed download URL
type IssueURLRequest struct {
	ObjectID uuid.UUID

	// Method is the HTTP method the URL grants. Defaults to GET. Only GET
	// URLs are cached; any other method signs fresh on every call.
	Method string
}
