// Package storage stores uploaded cover files on local disk and hands
// back stable references for persistence alongside posts.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyFilename = errors.New("upload has no filename")

// DiskStore writes uploads into a single directory and returns
// references of the form "uploads/<random-name><ext>". The extension is
// taken from the declared filename; file-type trust is delegated to the
// caller's transport.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a
// store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory uploads are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the upload to disk under a random name with the declared
// file extension and returns its storage reference. The reference is
// only returned once the file is fully written, so a post can never
// point at an unfinished upload.
func (s *DiskStore) Save(r io.Reader, originalName string) (string, error) {
	if originalName == "" {
		return "", ErrEmptyFilename
	}

	name := uuid.NewString() + sanitizeExt(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing upload: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing upload: %w", err)
	}

	return path.Join("uploads", name), nil
}

// sanitizeExt extracts a lowercased extension from the declared
// filename, discarding any path components the client sent.
func sanitizeExt(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if ext == "." {
		return ""
	}
	return ext
}
