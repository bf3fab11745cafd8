// Package route appends resource route registrations to the Laravel API
// route file.
package route

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/cmmoran/crudgen/internal/tracked"
	"github.com/cmmoran/crudgen/pkg/naming"
)

const fileHeader = "<?php\n\nuse Illuminate\\Support\\Facades\\Route;\n"

// Line returns the registration for names, binding the kebab plural path to
// the controller's fully qualified class name.
func Line(names naming.Names) string {
	return fmt.Sprintf("Route::resource('%s', '%s');", names.RoutePath, names.ControllerClass)
}

// Register appends the registration for names to file. It does not check for
// an existing registration: registering twice yields two lines. A missing
// route file is created.
func Register(fsys afero.Fs, file string, names naming.Names) error {
	f, err := tracked.Read(fsys, file)
	if err != nil {
		return err
	}

	content := f.Content
	if !f.Exists {
		content = fileHeader
	}
	if n := count(content, names); n > 0 {
		slog.Warn("route already registered", "path", names.RoutePath, "file", file, "count", n)
	}

	if err = f.Write(content + "\n" + Line(names)); err != nil {
		return err
	}
	slog.Debug("appended route", "file", file, "path", names.RoutePath)
	return nil
}

// Count reports how many registrations for names file holds.
func Count(fsys afero.Fs, file string, names naming.Names) (int, error) {
	f, err := tracked.Read(fsys, file)
	if err != nil {
		return 0, err
	}
	return count(f.Content, names), nil
}

func count(content string, names naming.Names) int {
	return strings.Count(content, Line(names))
}
