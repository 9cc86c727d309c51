// Package imghost talks to the external image hosting the media pipeline
// publishes content images to. Two backends exist: the ImgBB HTTP API and
// an S3-compatible bucket.
package imghost

import (
	"context"
	"errors"
	"fmt"
)

// Host uploads binaries to durable external hosting and (where the backend
// allows it) deletes them again.
type Host interface {
	// Upload sends one image binary and returns its public URL.
	Upload(ctx context.Context, data []byte, name string) (string, error)
	// Delete removes a previously uploaded asset. Backends without a delete
	// API report success without removing anything; callers must treat
	// deletion as best-effort.
	Delete(ctx context.Context, url string) (bool, error)
}

// ErrRateLimited is returned when the host kept answering 429 until
// retries were exhausted.
var ErrRateLimited = errors.New("image host rate limited")

// UploadError preserves the host's raw diagnostic for logging.
type UploadError struct {
	StatusCode int
	Body       string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image host returned status %d: %s", e.StatusCode, e.Body)
}
