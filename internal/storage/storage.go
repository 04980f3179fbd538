package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"docrepo/internal/config"
)

// Package storage contains the document storage abstraction and its backends: a local
// filesystem tree (default) and S3-compatible object storage.
// Keys are slash-separated: "<category>/<type>/<stored-name>".

var (
	// ErrNotFound is returned when a key or listing prefix does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned when a key would resolve outside the storage root.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	CreatedAt    time.Time
	LastModified time.Time
	Metadata     map[string]string
}

// Name is the last element of the key.
func (o ObjectInfo) Name() string { return path.Base(o.Key) }

// Storage is the document store used by the service layer.
// Implementations are safe for concurrent use and never retry failed operations.
type Storage interface {
	// EnsureDir makes sure the folder for prefix exists. Existing folders are not an error.
	EnsureDir(ctx context.Context, prefix string) error
	// Put stores the reader under key. The object is visible only once fully written.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// List returns the objects directly under prefix, in no particular order.
	// A prefix that does not exist yields an error wrapping ErrNotFound.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// New builds the backend selected by cfg.Driver.
func New(cfg config.StorageConfig, mc config.MinIOConfig) (Storage, error) {
	switch cfg.Driver {
	case "", config.DriverLocal:
		return NewLocal(cfg.Root)
	case config.DriverMinIO:
		return NewMinIO(mc)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
