// Package blob provides access to the object store backing corpusgate.
// A Locator turns a signed-URL request into a time-limited URL granting
// the requested access without further authentication.
package blob

import (
	"context"

	"corpusgate/internal/model"
)

// Locator mints signed access URLs for blobs. Implementations do not
// check that the referenced blob exists; a signed URL for a missing blob
// simply fails at download time.
type Locator interface {
	// SignedURL returns a URL granting req.Permission on the blob named
	// req.Filename within req.Container, valid for req.TTL.
	SignedURL(ctx context.Context, req model.SignedURLRequest) (string, error)
}
