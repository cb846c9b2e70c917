package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
	URL          string
}

// UploadInput describes one object to store.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// Service stores site media in remote object storage.
type Service interface {
	Upload(ctx context.Context, in UploadInput) (string, error)
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DeleteObject(ctx context.Context, key string) error
	GetObjectURL(ctx context.Context, key string, expires time.Duration) (string, error)
	PublicURL(key string) string
}
