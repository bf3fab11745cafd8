package host

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cmmoran/crudgen/pkg/naming"
)

// Runner executes name with args in dir and returns its combined output.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Artisan delegates skeleton creation to `php artisan make:*` in the
// project directory.
type Artisan struct {
	Dir    string // project root on disk
	PHP    string // php binary, "php" when empty
	Layout naming.Layout
	Run    Runner
}

var _ Skeletons = (*Artisan)(nil)

var (
	// Laravel 9+: "INFO  Migration [database/migrations/..._create_orders_table.php] created successfully."
	migrationPathRe = regexp.MustCompile(`Migration \[([^\]]+?\.php)\]`)
	// Laravel 6-8: "Created Migration: 2020_01_01_000000_create_orders_table"
	migrationNameRe = regexp.MustCompile(`Created Migration:\s*(\S+)`)
)

func (a *Artisan) MakeModel(ctx context.Context, names naming.Names) (ModelSkeleton, error) {
	out, err := a.artisan(ctx, "make:model", names.ModelName, "--migration")
	if err != nil {
		return ModelSkeleton{}, err
	}
	migration := a.migrationPath(out)
	if migration == "" {
		slog.Warn("artisan did not report the migration it created", "output", strings.TrimSpace(out))
	}
	return ModelSkeleton{ModelPath: names.ModelPath, MigrationPath: migration}, nil
}

func (a *Artisan) MakeController(ctx context.Context, names naming.Names) (string, error) {
	_, err := a.artisan(ctx, "make:controller", names.ControllerName, "--resource")
	return names.ControllerPath, err
}

func (a *Artisan) MakeResource(ctx context.Context, names naming.Names) (string, error) {
	_, err := a.artisan(ctx, "make:resource", names.ResourceName)
	return names.ResourcePath, err
}

func (a *Artisan) MakeCollection(ctx context.Context, names naming.Names) (string, error) {
	_, err := a.artisan(ctx, "make:resource", names.CollectionName)
	return names.CollectionPath, err
}

func (a *Artisan) artisan(ctx context.Context, args ...string) (string, error) {
	php := a.PHP
	if php == "" {
		php = "php"
	}
	run := a.Run
	if run == nil {
		run = ExecRunner
	}

	argv := append([]string{"artisan"}, args...)
	argv = append(argv, "--no-interaction")
	slog.Debug("running artisan", "dir", a.Dir, "args", argv)

	b, err := run(ctx, a.Dir, php, argv...)
	out := string(b)
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", php, strings.Join(argv, " "), err, strings.TrimSpace(out))
	}
	// make:* commands report existing classes on stdout and still exit 0
	if strings.Contains(out, "already exists") {
		return out, fmt.Errorf("%s: %w", strings.TrimSpace(out), ErrExists)
	}
	return out, nil
}

// migrationPath extracts the created migration from make:model output as a
// project relative path.
func (a *Artisan) migrationPath(out string) string {
	if m := migrationPathRe.FindStringSubmatch(out); m != nil {
		p := filepath.ToSlash(m[1])
		if filepath.IsAbs(m[1]) && a.Dir != "" {
			if rel, err := filepath.Rel(a.Dir, m[1]); err == nil {
				p = filepath.ToSlash(rel)
			}
		}
		return path.Clean(p)
	}
	if m := migrationNameRe.FindStringSubmatch(out); m != nil {
		return path.Join(a.Layout.MigrationsDir, strings.TrimSuffix(m[1], ".php")+".php")
	}
	return ""
}
