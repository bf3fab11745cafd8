package generator

import (
	"errors"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmmoran/crudgen/internal/model"
)

// Overlay returns a file system that reads through to base and keeps every
// write in memory, leaving base untouched.
func Overlay(base afero.Fs) afero.Fs {
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
}

// Change is the effect a run had on one file.
type Change struct {
	Path    string
	Created bool
	Diff    string // -before +after
}

// Changes compares every file the run touched in overlay against base.
func Changes(base, overlay afero.Fs, run *model.Run) ([]Change, error) {
	var out []Change
	for _, p := range touched(run) {
		before, existed, err := readIfExists(base, p)
		if err != nil {
			return nil, err
		}
		after, _, err := readIfExists(overlay, p)
		if err != nil {
			return nil, err
		}
		if diff := cmp.Diff(before, after); diff != "" {
			out = append(out, Change{Path: p, Created: !existed, Diff: diff})
		}
	}
	return out, nil
}

func readIfExists(fsys afero.Fs, p string) (string, bool, error) {
	b, err := afero.ReadFile(fsys, p)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}
