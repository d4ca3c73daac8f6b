package storage

import (
	"context"
	"io"
)

// PutOptions describes one object upload.
type PutOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service writes objects to remote storage.
type Service interface {
	// PutObject uploads body and returns its s3://bucket/key location.
	PutObject(ctx context.Context, body io.Reader, opts PutOptions) (string, error)
}
