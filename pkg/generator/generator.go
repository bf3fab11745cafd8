// Package generator drives a generation run: it checks the project, parses
// the columns and produces the model, controller, migration patch, route,
// resource and collection of one resource, in that order.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/ettle/strcase"
	"github.com/spf13/afero"

	"github.com/cmmoran/crudgen/internal/host"
	"github.com/cmmoran/crudgen/internal/model"
	"github.com/cmmoran/crudgen/internal/patch"
	"github.com/cmmoran/crudgen/internal/progress"
	"github.com/cmmoran/crudgen/internal/route"
	"github.com/cmmoran/crudgen/pkg/column"
	"github.com/cmmoran/crudgen/pkg/naming"
	"github.com/cmmoran/crudgen/pkg/render"
)

// Generator runs generations against a project file system rooted at the
// project directory.
type Generator struct {
	Fs        afero.Fs
	Skeletons host.Skeletons
	Renderer  *render.Renderer
	Project   host.Project
	Reporter  progress.Reporter

	Layout           naming.Layout
	PerPage          int
	CleanupOnFailure bool
}

func New(fsys afero.Fs, skeletons host.Skeletons, renderer *render.Renderer, opts *Options) *Generator {
	if renderer == nil {
		renderer = render.New()
	}
	return &Generator{
		Fs:               fsys,
		Skeletons:        skeletons,
		Renderer:         renderer,
		Reporter:         progress.Nop{},
		Layout:           opts.Layout,
		PerPage:          opts.PerPage,
		CleanupOnFailure: opts.CleanupOnFailure,
	}
}

// ResolveLayout applies the models directory fallback: projects without
// the models directory keep their models directly in the app directory.
func ResolveLayout(fsys afero.Fs, l naming.Layout) naming.Layout {
	l.Normalize()
	if ok, _ := afero.DirExists(fsys, l.ModelsDir); !ok {
		slog.Debug("models directory missing, using app directory", "models_dir", l.ModelsDir, "app_dir", l.AppDir)
		l.ModelsDir = l.AppDir
	}
	return l
}

// Run generates every artifact of resource from rawColumns ("name:type,...").
// The returned run is never nil; it carries the artifacts written so far
// and, for a failed run, the error that is also returned.
func (g *Generator) Run(ctx context.Context, resource, rawColumns string) (*model.Run, error) {
	run := model.NewRun(strings.TrimSpace(resource))
	rep := g.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}
	log := slog.With("run", run.ID, "resource", run.Resource)

	rep.Start(model.Steps)
	err := g.run(ctx, run, rawColumns, rep, log)
	rep.Finish()

	if err != nil {
		stage := run.Stage
		run.Fail(err)
		log.Error("generation failed", "stage", stage.String(), "error", err)
		rep.Error("%v", err)
		if g.CleanupOnFailure {
			g.cleanup(run, log)
		}
		return run, run.Err
	}
	if err = run.Advance(model.StageDone); err != nil {
		return run, err
	}
	log.Info("generation finished", "status", run.Status(), "artifacts", len(run.Artifacts))
	rep.Info("CRUD operations created successfully.")
	return run, nil
}

func (g *Generator) run(ctx context.Context, run *model.Run, rawColumns string, rep progress.Reporter, log *slog.Logger) error {
	if run.Resource == "" || strings.TrimSpace(rawColumns) == "" {
		return ErrResourceRequired
	}

	layout := ResolveLayout(g.Fs, g.Layout)
	names := naming.Resolve(run.Resource, layout)

	// pre-flight
	for _, p := range []string{names.ModelPath, names.ControllerPath} {
		ok, err := afero.Exists(g.Fs, p)
		if err != nil {
			return err
		}
		if ok {
			return &AlreadyExistsError{Resource: names.ModelName, Path: p}
		}
	}
	if err := g.advance(run, model.StagePreflightChecked, rep, log); err != nil {
		return err
	}

	cols, err := column.Parse(rawColumns)
	if err != nil {
		return err
	}
	run.Columns = cols
	if err = run.Advance(model.StageParsed); err != nil {
		return err
	}

	migration, err := g.model(ctx, run, names)
	if err != nil {
		return err
	}
	rep.Info("Model %s and migration created successfully.", names.ModelName)
	if err = g.advance(run, model.StageModelCreated, rep, log); err != nil {
		return err
	}

	if err = g.controller(ctx, run, names); err != nil {
		return err
	}
	rep.Info("Controller %s created and updated successfully.", names.ControllerName)
	if err = g.advance(run, model.StageControllerCreated, rep, log); err != nil {
		return err
	}

	switch err = g.migration(run, layout, names, migration); {
	case errors.Is(err, patch.ErrMigrationNotFound):
		run.Warn(err)
		log.Warn("migration not patched", "error", err)
		rep.Warn("Migration file for %s not found.", names.ModelName)
	case err != nil:
		return err
	default:
		rep.Info("Columns added to migration for %s.", names.ModelName)
	}
	if err = g.advance(run, model.StageMigrationPatched, rep, log); err != nil {
		return err
	}

	if err = g.route(run, layout, names); err != nil {
		run.Warn(err)
		log.Warn("route not added", "error", err)
		rep.Warn("Failed to add route.")
	} else {
		rep.Info("Route added successfully.")
	}
	if err = g.advance(run, model.StageRouteAdded, rep, log); err != nil {
		return err
	}

	if err = g.resource(ctx, run, names); err != nil {
		return err
	}
	rep.Info("Resource %s created and updated successfully.", names.ResourceName)
	if err = g.advance(run, model.StageResourceCreated, rep, log); err != nil {
		return err
	}

	p, err := g.Skeletons.MakeCollection(ctx, names)
	if err != nil {
		return &SkeletonError{Kind: model.KindCollection, Err: err}
	}
	run.Record(model.Artifact{Kind: model.KindCollection, Path: p, Operation: model.OpCreate, Created: true})
	rep.Info("Collection %s created successfully.", names.CollectionName)
	return g.advance(run, model.StageCollectionCreated, rep, log)
}

func (g *Generator) advance(run *model.Run, next model.Stage, rep progress.Reporter, log *slog.Logger) error {
	if err := run.Advance(next); err != nil {
		return err
	}
	run.Step++
	rep.Advance(next.String())
	log.Log(context.Background(), slog.Level(-8), "stage reached", "stage", next.String(), "step", run.Step)
	return nil
}

// model creates the model and migration skeletons and fills in the model.
// It returns the migration path the driver reported, if any.
func (g *Generator) model(ctx context.Context, run *model.Run, names naming.Names) (string, error) {
	sk, err := g.Skeletons.MakeModel(ctx, names)
	if sk.ModelPath != "" {
		run.Record(model.Artifact{Kind: model.KindModel, Path: sk.ModelPath, Operation: model.OpCreate, Created: true})
	}
	if sk.MigrationPath != "" {
		run.Record(model.Artifact{Kind: model.KindMigration, Path: sk.MigrationPath, Operation: model.OpCreate, Created: true})
	}
	if err != nil {
		return "", &SkeletonError{Kind: model.KindModel, Err: err}
	}

	imports, traits := host.ModelTraits(g.Project, true)
	values := map[string]string{
		"namespace":    naming.ClassNamespace(names.ModelClass),
		"traitImports": imports,
		"modelName":    names.ModelName,
		"traitUse":     "",
		"fillable":     Fillable(run.Columns),
	}
	if traits != "" {
		values["traitUse"] = "    use " + traits + ";\n\n"
	}

	var accessors strings.Builder
	for _, c := range run.Columns {
		if !c.Type.IsJSON() {
			continue
		}
		s, err := g.Renderer.Render(render.ModelJSONAccessor, map[string]string{
			"column": c.Name,
			"studly": strcase.ToPascal(c.Name),
		})
		if err != nil {
			return "", err
		}
		accessors.WriteString(s)
	}
	values["accessors"] = accessors.String()

	if values["filterScope"], err = g.Renderer.Render(render.ModelFilterScope, map[string]string{}); err != nil {
		return "", err
	}

	if err = g.write(run, model.KindModel, names.ModelPath, render.Model, values); err != nil {
		return "", err
	}
	return sk.MigrationPath, nil
}

func (g *Generator) controller(ctx context.Context, run *model.Run, names naming.Names) error {
	p, err := g.Skeletons.MakeController(ctx, names)
	if err != nil {
		return &SkeletonError{Kind: model.KindController, Err: err}
	}
	run.Record(model.Artifact{Kind: model.KindController, Path: p, Operation: model.OpCreate, Created: true})

	return g.write(run, model.KindController, p, render.Controller, map[string]string{
		"namespace":           naming.ClassNamespace(names.ControllerClass),
		"controllerName":      names.ControllerName,
		"modelName":           names.ModelName,
		"modelNamespace":      names.ModelClass,
		"resourceName":        names.ResourceName,
		"resourceNamespace":   names.ResourceClass,
		"collectionName":      names.CollectionName,
		"collectionNamespace": names.CollectionClass,
		"perPage":             strconv.Itoa(g.perPage()),
	})
}

func (g *Generator) migration(run *model.Run, layout naming.Layout, names naming.Names, file string) error {
	if file == "" {
		var err error
		if file, err = patch.Locate(g.Fs, layout.MigrationsDir, names.MigrationGlob); err != nil {
			return err
		}
		slog.Debug("located migration", "path", file)
	}
	if err := patch.Migration(g.Fs, file, run.Columns); err != nil {
		return err
	}
	run.Record(model.Artifact{Kind: model.KindMigration, Path: file, Operation: model.OpPatch})
	return nil
}

func (g *Generator) route(run *model.Run, layout naming.Layout, names naming.Names) error {
	existed, err := afero.Exists(g.Fs, layout.RoutesFile)
	if err != nil {
		return err
	}
	if err = route.Register(g.Fs, layout.RoutesFile, names); err != nil {
		return err
	}
	run.Record(model.Artifact{Kind: model.KindRoute, Path: layout.RoutesFile, Operation: model.OpAppend, Created: !existed})
	return nil
}

func (g *Generator) resource(ctx context.Context, run *model.Run, names naming.Names) error {
	p, err := g.Skeletons.MakeResource(ctx, names)
	if err != nil {
		return &SkeletonError{Kind: model.KindResource, Err: err}
	}
	run.Record(model.Artifact{Kind: model.KindResource, Path: p, Operation: model.OpCreate, Created: true})

	return g.write(run, model.KindResource, p, render.Resource, map[string]string{
		"namespace":      naming.ClassNamespace(names.ResourceClass),
		"resourceName":   names.ResourceName,
		"resourceFields": ResourceFields(run.Columns),
	})
}

// write renders id over the skeleton at file and remembers what it rendered
// on the run's artifact for file.
func (g *Generator) write(run *model.Run, kind model.Kind, file string, id render.TemplateID, values map[string]string) error {
	ok, err := afero.Exists(g.Fs, file)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s file %s not found", kind, file)
	}

	content, err := g.Renderer.Render(id, values)
	if err != nil {
		return err
	}
	if err = afero.WriteFile(g.Fs, file, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}

	for i := len(run.Artifacts) - 1; i >= 0; i-- {
		if a := &run.Artifacts[i]; a.Kind == kind && a.Path == file {
			a.Template = string(id)
			a.Placeholders = values
			break
		}
	}
	slog.Debug("wrote artifact", "kind", kind.String(), "path", file)
	return nil
}

// cleanup removes the files the failed run created. Files it only patched
// or appended to are left alone.
func (g *Generator) cleanup(run *model.Run, log *slog.Logger) {
	for i := len(run.Artifacts) - 1; i >= 0; i-- {
		a := run.Artifacts[i]
		if !a.Created {
			continue
		}
		if err := g.Fs.Remove(a.Path); err != nil && !errors.Is(err, afero.ErrFileNotFound) {
			log.Warn("cleanup failed", "path", a.Path, "error", err)
			continue
		}
		log.Info("removed", "path", a.Path)
	}
}

func (g *Generator) perPage() int {
	if g.PerPage <= 0 {
		return 10
	}
	return g.PerPage
}

// Fillable renders the quoted, comma separated column names of a model's
// $fillable array.
func Fillable(columns []column.Spec) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = "'" + c.Name + "'"
	}
	return strings.Join(quoted, ", ")
}

// ResourceFields renders one `'name' => $this->name,` line per column.
func ResourceFields(columns []column.Spec) string {
	lines := make([]string, len(columns))
	for i, c := range columns {
		lines[i] = fmt.Sprintf("            '%s' => $this->%s,", c.Name, c.Name)
	}
	return strings.Join(lines, "\n")
}

// touched lists the distinct paths of a run's artifacts in order.
func touched(run *model.Run) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range run.Artifacts {
		p := path.Clean(a.Path)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
