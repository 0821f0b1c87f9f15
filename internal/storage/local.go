package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalDir stores objects as files in a single directory.
type LocalDir struct {
	dir string
}

func NewLocalDir(dir string) (*LocalDir, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("media directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &LocalDir{dir: abs}, nil
}

// EnsureBucket creates the directory when missing.
func (l *LocalDir) EnsureBucket(ctx context.Context) error {
	return os.MkdirAll(l.dir, 0o755)
}

// Put writes the object through a dot-prefixed temporary file so readers
// never observe a partial upload. ValidKey never names such files.
func (l *LocalDir) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return err
	}
	if size >= 0 && written != size {
		tmp.Close()
		return fmt.Errorf("short write for %s: %d of %d bytes", key, written, size)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(l.dir, key))
}

func (l *LocalDir) Get(ctx context.Context, key string) (*Object, error) {
	file, err := os.Open(filepath.Join(l.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, ErrNotFound
	}
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Object{
		Body:        file,
		ContentType: contentType,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

func (l *LocalDir) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(l.dir, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Bucket returns the directory path.
func (l *LocalDir) Bucket() string {
	return l.dir
}
