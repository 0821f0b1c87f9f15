package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ObjectStore is the subset of object storage the media service needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Upload is a media file received with a post.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// allowedMediaTypes maps every accepted MIME type to the extension used
// when the client's filename does not already carry a matching one.
var allowedMediaTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"video/mpeg":      ".mpeg",
	"video/quicktime": ".mov",
}

// MediaService validates uploads and stores them under generated keys.
type MediaService struct {
	store    ObjectStore
	maxBytes int64
	now      func() time.Time
}

func NewMediaService(store ObjectStore, maxBytes int64) *MediaService {
	return &MediaService{store: store, maxBytes: maxBytes, now: time.Now}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// MediaTooLarge is the rejection for uploads above maxBytes.
func MediaTooLarge(maxBytes int64) *Error {
	return invalid(fmt.Sprintf("Media file exceeds the %s limit", formatSize(maxBytes)))
}

// Save validates upload and writes it as "<userID>-<unixMillis><ext>".
func (s *MediaService) Save(ctx context.Context, userID int, upload Upload) (string, error) {
	if len(upload.Data) == 0 {
		return "", ErrMediaEmpty
	}
	if int64(len(upload.Data)) > s.maxBytes {
		return "", MediaTooLarge(s.maxBytes)
	}

	contentType := mediaType(upload)
	if _, ok := allowedMediaTypes[contentType]; !ok {
		return "", ErrMediaType
	}

	key := fmt.Sprintf("%d-%d%s", userID, s.now().UnixMilli(), mediaExt(upload.Filename, contentType))
	if err := s.store.Put(ctx, key, bytes.NewReader(upload.Data), int64(len(upload.Data)), contentType); err != nil {
		return "", fmt.Errorf("store media %s: %w", key, err)
	}
	return key, nil
}

// Remove deletes a stored object. Failures are logged only.
func (s *MediaService) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "remove media failed", "key", key, "err", err)
	}
}

func mediaType(upload Upload) string {
	declared, _, err := mime.ParseMediaType(upload.ContentType)
	if err == nil && declared != "" && declared != "application/octet-stream" {
		return strings.ToLower(declared)
	}
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(upload.Data))
	return sniffed
}

// mediaExt keeps the client's extension only when it is registered for the
// validated content type, so the stored key never implies another type.
func mediaExt(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && slices.Contains(exts, ext) {
			return ext
		}
	}
	return allowedMediaTypes[contentType]
}

func formatSize(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}
