package storage

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
)

// File permissions for snapshot files and their parent directories.
const (
	filePermissions = 0o644
	dirPermissions  = 0o755
)

// File persists catalog snapshots as a single YAML document on disk.
// Writes go through a temp file followed by a rename, so a failed save
// leaves the previous snapshot intact.
type File struct {
	path string
}

// NewFile creates a file-backed persister writing to the given path.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", path, "cannot be empty")
	}
	return &File{path: path}, nil
}

// Path returns the snapshot file path.
func (f *File) Path() string {
	return f.path
}

// Load reads and parses the snapshot file. A missing file yields
// errors.ErrSnapshotNotFound; a malformed file yields a ParseError.
func (f *File) Load() (*catalog.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrSnapshotNotFound
		}
		return nil, errors.WrapIO("read", f.path, err)
	}

	var snap catalog.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse("yaml", f.path, err)
	}
	return &snap, nil
}

// Save marshals the snapshot and atomically replaces the file on disk.
func (f *File) Save(snap *catalog.Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return errors.WrapParse("yaml", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", f.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("chmod", tmpName, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("rename", f.path, err)
	}
	return nil
}
