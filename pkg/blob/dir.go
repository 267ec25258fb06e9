package blob

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
)

const (
	blobPermissions = 0o644
	dirPermissions  = 0o755
)

// Dir stores blobs as files under a directory, one uuid-named .html file
// per blob. The ref is the file name.
type Dir struct {
	root string
}

// NewDir creates a directory-backed blob store rooted at root.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, errors.NewValidationError("root", root, "cannot be empty")
	}
	if err := os.MkdirAll(root, dirPermissions); err != nil {
		return nil, errors.WrapIO("create", root, err)
	}
	return &Dir{root: root}, nil
}

// Store writes content to a fresh uuid-named file.
func (d *Dir) Store(_ context.Context, content []byte) (catalog.StorageRef, error) {
	name := uuid.NewString() + ".html"
	path := filepath.Join(d.root, name)
	if err := os.WriteFile(path, content, blobPermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return catalog.StorageRef(name), nil
}

// Fetch reads the content behind a ref.
func (d *Dir) Fetch(_ context.Context, ref catalog.StorageRef) ([]byte, error) {
	path := filepath.Join(d.root, filepath.Base(string(ref)))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("blob", string(ref))
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}

// Delete removes the content behind a ref. Deleting a missing blob is a
// no-op success.
func (d *Dir) Delete(_ context.Context, ref catalog.StorageRef) error {
	path := filepath.Join(d.root, filepath.Base(string(ref)))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", path, err)
	}
	return nil
}
