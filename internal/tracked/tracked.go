// Package tracked implements check-then-write access to project files that
// crudgen rewrites in place (the latest migration and the route file).
package tracked

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

// ErrModified is returned by Write when the file changed on disk after it
// was read.
var ErrModified = errors.New("file was modified since it was read")

// File is a snapshot of a file's content together with the version (content
// hash) it was read at.
type File struct {
	Path    string
	Content string
	Exists  bool

	fs      afero.Fs
	version uint64
	mode    os.FileMode
}

// Read loads path from fsys. A missing file is not an error: the returned
// File has Exists == false and empty Content.
func Read(fsys afero.Fs, path string) (*File, error) {
	f := &File{Path: path, fs: fsys, mode: 0o644}

	data, err := afero.ReadFile(fsys, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if info, err := fsys.Stat(path); err == nil {
		f.mode = info.Mode().Perm()
	}
	f.Content = string(data)
	f.Exists = true
	f.version = xxhash.Sum64(data)
	return f, nil
}

// Version identifies the content the snapshot was read at.
func (f *File) Version() uint64 {
	return f.version
}

// Write replaces the file with content, provided it is still at the version
// it was read at (or still absent if it did not exist).
func (f *File) Write(content string) error {
	data, err := afero.ReadFile(f.fs, f.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if f.Exists {
			return fmt.Errorf("%s: %w", f.Path, ErrModified)
		}
	case err != nil:
		return fmt.Errorf("read %s: %w", f.Path, err)
	default:
		if !f.Exists || xxhash.Sum64(data) != f.version {
			return fmt.Errorf("%s: %w", f.Path, ErrModified)
		}
	}

	if err := f.fs.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Path, err)
	}
	if err := afero.WriteFile(f.fs, f.Path, []byte(content), f.mode); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}

	f.Content = content
	f.Exists = true
	f.version = xxhash.Sum64String(content)
	return nil
}
