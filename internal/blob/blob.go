// Package blob stores uploaded listing photos on disk and hands back
// generated file names for the items document to reference.
package blob

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Dir is a flat directory of stored blobs.
type Dir struct {
	path string
}

// Open prepares a blob directory, creating it if needed.
func Open(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Save writes a processed photo and returns the generated file name. Names
// are random, so uploads never collide or overwrite each other.
func (d *Dir) Save(data []byte) (string, error) {
	name := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(d.path, name), data, 0o644); err != nil {
		return "", fmt.Errorf("saving blob: %w", err)
	}
	return name, nil
}

// Remove deletes a stored blob. Missing blobs are not an error.
func (d *Dir) Remove(name string) error {
	err := os.Remove(filepath.Join(d.path, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}

// FileServer returns a handler that serves stored blobs by name.
func (d *Dir) FileServer() http.Handler {
	return http.FileServer(http.Dir(d.path))
}
