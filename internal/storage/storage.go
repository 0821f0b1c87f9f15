package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
)

var (
	ErrNotFound   = errors.New("storage: object not found")
	ErrInvalidKey = errors.New("storage: invalid object key")
)

// Object is an open stored object. Body may also implement io.Seeker.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Backend defines common object operations across media backends.
type Backend interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Storage wraps a Backend and rejects keys that could escape the bucket.
type Storage struct {
	backend Backend
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend Backend) *Storage {
	return &Storage{backend: backend}
}

// Open builds the backend selected by cfg.Media.Backend and makes sure its
// bucket or directory exists.
func Open(ctx context.Context, cfg config.Config) (*Storage, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Media.Backend {
	case config.MediaLocal, "":
		backend, err = NewLocalDir(cfg.Media.Dir)
	case config.MediaMinio:
		backend, err = NewMinioClient(cfg.Minio)
	case config.MediaGCS:
		backend, err = NewGCSClient(ctx, cfg.GCS)
	default:
		err = fmt.Errorf("unsupported media backend %q", cfg.Media.Backend)
	}
	if err != nil {
		return nil, err
	}

	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure media bucket %s: %w", backend.Bucket(), err)
	}
	return NewStorage(backend), nil
}

// ValidKey reports whether key is a flat, non-hidden object name.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, `/\`) && !strings.Contains(key, "..")
}

// EnsureBucket ensures the configured bucket exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Put uploads an object to the configured bucket.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	return s.backend.Put(ctx, key, r, size, contentType)
}

// Get opens an object. Missing objects yield ErrNotFound.
func (s *Storage) Get(ctx context.Context, key string) (*Object, error) {
	if !ValidKey(key) {
		return nil, ErrNotFound
	}
	return s.backend.Get(ctx, key)
}

// Delete removes an object from the configured bucket.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	return s.backend.Delete(ctx, key)
}

// Bucket returns the configured bucket name.
func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}

// Backend exposes the wrapped backend.
func (s *Storage) Backend() Backend {
	return s.backend
}
