// Package host creates the empty skeleton files crudgen fills in. Skeletons
// come either from the project's own `php artisan make:*` commands or from
// stubs bundled with crudgen.
package host

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/ettle/strcase"
	"github.com/spf13/afero"

	"github.com/cmmoran/crudgen/pkg/naming"
	"github.com/cmmoran/crudgen/pkg/render"
)

// ErrExists is returned when a skeleton's target file is already present.
var ErrExists = errors.New("file already exists")

// ModelSkeleton is what MakeModel created. MigrationPath is empty when the
// driver could not tell which migration it wrote.
type ModelSkeleton struct {
	ModelPath     string
	MigrationPath string
}

// Skeletons is the host tooling crudgen delegates empty file creation to.
// Returned paths are relative to the project root.
type Skeletons interface {
	MakeModel(ctx context.Context, names naming.Names) (ModelSkeleton, error)
	MakeController(ctx context.Context, names naming.Names) (string, error)
	MakeResource(ctx context.Context, names naming.Names) (string, error)
	MakeCollection(ctx context.Context, names naming.Names) (string, error)
}

// Native writes skeletons from the bundled stubs, mirroring what the
// detected Laravel version's make commands produce.
type Native struct {
	Fs       afero.Fs
	Renderer *render.Renderer
	Layout   naming.Layout
	Project  Project
	Now      func() time.Time
}

var _ Skeletons = (*Native)(nil)

func (n *Native) MakeModel(_ context.Context, names naming.Names) (ModelSkeleton, error) {
	imports, traits := ModelTraits(n.Project, false)
	body := "    //"
	if traits != "" {
		body = "    use " + traits + ";"
	}
	err := n.create(names.ModelPath, render.SkeletonModel, map[string]string{
		"namespace":    naming.ClassNamespace(names.ModelClass),
		"traitImports": imports,
		"modelName":    names.ModelName,
		"body":         body,
	})
	if err != nil {
		return ModelSkeleton{}, err
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	migration := path.Join(n.Layout.MigrationsDir,
		fmt.Sprintf("%s_create_%s_table.php", now().Format("2006_01_02_150405"), names.Table))

	id, values := render.SkeletonMigration, map[string]string{"table": names.Table}
	if !n.Project.AnonymousMigrations() {
		id = render.SkeletonMigrationLegacy
		values["className"] = "Create" + strcase.ToPascal(names.Table) + "Table"
	}
	if err = n.create(migration, id, values); err != nil {
		return ModelSkeleton{ModelPath: names.ModelPath}, err
	}

	return ModelSkeleton{ModelPath: names.ModelPath, MigrationPath: migration}, nil
}

func (n *Native) MakeController(_ context.Context, names naming.Names) (string, error) {
	return names.ControllerPath, n.create(names.ControllerPath, render.SkeletonController, map[string]string{
		"namespace":      naming.ClassNamespace(names.ControllerClass),
		"controllerName": names.ControllerName,
	})
}

func (n *Native) MakeResource(_ context.Context, names naming.Names) (string, error) {
	return names.ResourcePath, n.create(names.ResourcePath, render.SkeletonResource, map[string]string{
		"namespace":    naming.ClassNamespace(names.ResourceClass),
		"resourceName": names.ResourceName,
	})
}

func (n *Native) MakeCollection(_ context.Context, names naming.Names) (string, error) {
	return names.CollectionPath, n.create(names.CollectionPath, render.SkeletonCollection, map[string]string{
		"namespace":      naming.ClassNamespace(names.CollectionClass),
		"collectionName": names.CollectionName,
	})
}

func (n *Native) create(file string, id render.TemplateID, values map[string]string) error {
	if ok, err := afero.Exists(n.Fs, file); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("%s: %w", file, ErrExists)
	}

	content, err := n.Renderer.Render(id, values)
	if err != nil {
		return err
	}
	if err = n.Fs.MkdirAll(path.Dir(file), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(n.Fs, file, []byte(content), 0o644)
}

// ModelTraits returns the import block and trait list of a model for the
// project's framework version, optionally with soft deletes. traits is
// empty when the model uses none.
func ModelTraits(p Project, softDeletes bool) (imports, traits string) {
	var uses, names []string
	if p.HasFactories() {
		uses = append(uses, `use Illuminate\Database\Eloquent\Factories\HasFactory;`)
		names = append(names, "HasFactory")
	}
	uses = append(uses, `use Illuminate\Database\Eloquent\Model;`)
	if softDeletes {
		uses = append(uses, `use Illuminate\Database\Eloquent\SoftDeletes;`)
		names = append(names, "SoftDeletes")
	}
	return strings.Join(uses, "\n"), strings.Join(names, ", ")
}
