// Package storage holds the S3-compatible object store behind uploaded documents.
// Objects are streamed; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions describe an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the store reports back about an object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// PresignOptions shape a presigned download link.
type PresignOptions struct {
	Expiry time.Duration
	// Filename, when set, asks the store to serve the object inline under this name
	// so browsers render it in an iframe or img instead of downloading it.
	Filename string
}

// Storage is the object store used for document content.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL readable without credentials.
	PresignGet(ctx context.Context, key string, opt PresignOptions) (string, error)
}
