package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const markerFileName = "marker.json"

// FileRepository implements Repository using a JSON file in a directory.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a FileRepository storing marker.json in dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Load reads the marker from disk.
func (r *FileRepository) Load(ctx context.Context) (Marker, error) {
	if err := ctx.Err(); err != nil {
		return Marker{}, err
	}

	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Marker{}, nil
		}
		return Marker{}, err
	}

	var m Marker
	if err := json.Unmarshal(data, &m); err != nil {
		return Marker{}, fmt.Errorf("decode %s: %w", r.Path(), err)
	}
	return m, nil
}

// Save writes the marker to a temp file and renames it into place.
func (r *FileRepository) Save(ctx context.Context, m Marker) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the marker file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, markerFileName)
}

var _ Repository = (*FileRepository)(nil)
