package ports

import (
	"context"
	"io"
)

// FileStorage is the object-storage contract used by the archive worker.
type FileStorage interface {
	// UploadFile stores an object under key and returns its URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}
