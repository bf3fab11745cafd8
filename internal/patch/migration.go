// Package patch rewrites the migration created by the host framework so it
// declares the requested columns and soft-delete support.
package patch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/cmmoran/crudgen/internal/tracked"
	"github.com/cmmoran/crudgen/pkg/column"
)

const (
	SchemaImport      = `use Illuminate\Support\Facades\Schema;`
	SoftDeletesImport = `use Illuminate\Database\Eloquent\SoftDeletes;`
	SoftDeletesTrait  = `use SoftDeletes;`
	TimestampsStmt    = `$table->timestamps();`
	SoftDeletesStmt   = `$table->softDeletes();`
)

var (
	ErrMigrationNotFound = errors.New("migration file not found")
	ErrAlreadyPatched    = errors.New("migration already declares soft deletes")
)

// AnchorError reports that an expected line of the migration skeleton is
// missing, so the file cannot be patched safely.
type AnchorError struct {
	Path   string
	Anchor string
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("%s: anchor %q not found", e.Path, e.Anchor)
}

// matches both `class CreateOrdersTable extends Migration {` and the
// anonymous `return new class extends Migration {`.
var classOpenRe = regexp.MustCompile(`class\b[^{;]*?\bextends\s+Migration\s*\{`)

// Locate returns the newest migration in dir. Files matching glob are
// preferred; among candidates the latest modification time wins and equal
// times fall back to the (timestamp prefixed) file name.
func Locate(fsys afero.Fs, dir, glob string) (string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", dir, ErrMigrationNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("list migrations in %s: %w", dir, err)
	}

	var all, matching []os.FileInfo
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".php" {
			continue
		}
		all = append(all, e)
		if ok, _ := path.Match(glob, e.Name()); ok && glob != "" {
			matching = append(matching, e)
		}
	}

	candidates := matching
	if len(candidates) == 0 {
		candidates = all
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%s: %w", dir, ErrMigrationNotFound)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		mi, mj := candidates[i].ModTime(), candidates[j].ModTime()
		if !mi.Equal(mj) {
			return mi.After(mj)
		}
		return candidates[i].Name() > candidates[j].Name()
	})

	return path.Join(dir, candidates[0].Name()), nil
}

// Migration patches the migration at file in place.
func Migration(fsys afero.Fs, file string, columns []column.Spec) error {
	f, err := tracked.Read(fsys, file)
	if err != nil {
		return err
	}
	if !f.Exists {
		return fmt.Errorf("%s: %w", file, ErrMigrationNotFound)
	}

	patched, err := Apply(f.Content, columns)
	if err != nil {
		var anchor *AnchorError
		if errors.As(err, &anchor) {
			anchor.Path = file
		}
		return err
	}
	if err = f.Write(patched); err != nil {
		return err
	}

	slog.Debug("patched migration", "path", file, "columns", len(columns))
	return nil
}

// Apply performs the textual patch on a migration's content:
//
//  1. import SoftDeletes after the Schema facade import,
//  2. use the SoftDeletes trait inside the migration class body,
//  3. declare every column before $table->timestamps(), then soft deletes after it.
func Apply(content string, columns []column.Spec) (string, error) {
	if strings.Contains(content, SoftDeletesImport) {
		return "", ErrAlreadyPatched
	}

	if !strings.Contains(content, SchemaImport) {
		return "", &AnchorError{Anchor: SchemaImport}
	}
	content = strings.Replace(content, SchemaImport, SchemaImport+"\n"+SoftDeletesImport, 1)

	loc := classOpenRe.FindStringIndex(content)
	if loc == nil {
		return "", &AnchorError{Anchor: "class … extends Migration {"}
	}
	head := strings.TrimRight(content[:loc[1]-1], " \t\r\n")
	content = head + "\n{\n    " + SoftDeletesTrait + "\n" + content[loc[1]:]

	at := strings.Index(content, TimestampsStmt)
	if at < 0 {
		return "", &AnchorError{Anchor: TimestampsStmt}
	}
	indent := lineIndent(content, at)

	var b strings.Builder
	b.WriteString(content[:at])
	for _, stmt := range Statements(columns) {
		b.WriteString(stmt)
		b.WriteString("\n")
		b.WriteString(indent)
	}
	b.WriteString(TimestampsStmt)
	if !declaresSoftDeletes(columns) {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(SoftDeletesStmt)
	}
	b.WriteString(content[at+len(TimestampsStmt):])

	return b.String(), nil
}

// Statements renders one Blueprint call per column, in declaration order.
func Statements(columns []column.Spec) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = fmt.Sprintf("$table->%s('%s');", c.Type, c.Name)
	}
	return out
}

func declaresSoftDeletes(columns []column.Spec) bool {
	for _, c := range columns {
		if c.Type.IsSoftDelete() {
			return true
		}
	}
	return false
}

// lineIndent returns the whitespace between the start of the line holding
// offset and offset itself.
func lineIndent(s string, offset int) string {
	start := strings.LastIndex(s[:offset], "\n") + 1
	prefix := s[start:offset]
	if strings.TrimSpace(prefix) != "" {
		return ""
	}
	return prefix
}
