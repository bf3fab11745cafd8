package history

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmmoran/crudgen/pkg/manifest"
)

// List returns the runs recorded in the manifest, only those of resource
// when it is not empty.
func List(fsys afero.Fs, manifestPath, resource string) ([]manifest.Run, error) {
	m, err := manifest.Load(fsys, manifestPath)
	if err != nil {
		return nil, err
	}
	return m.RunsFor(resource), nil
}

// DiffLastTwo compares the column declarations of the two most recent runs
// of resource.
func DiffLastTwo(fsys afero.Fs, manifestPath, resource string) (string, error) {
	runs, err := List(fsys, manifestPath, resource)
	if err != nil {
		return "", err
	}
	if len(runs) < 2 {
		return "", fmt.Errorf("fewer than two runs recorded for %s", resource)
	}

	previous, current := runs[len(runs)-2], runs[len(runs)-1]
	return cmp.Diff(strings.Split(previous.Columns, ","), strings.Split(current.Columns, ",")), nil
}
