package storage

import (
	"context"
	"io"
)

// Object describes a stored media object.
type Object struct {
	Key string
	URL string
}

// UploadInput carries a single object's bytes and metadata.
type UploadInput struct {
	Key         string
	ContentType string
	Body        io.Reader
}

// Service stores image objects on a remote media host and returns
// stable public URLs.
type Service interface {
	Upload(ctx context.Context, bucket string, in UploadInput) (Object, error)
	Delete(ctx context.Context, bucket, key string) error
}
