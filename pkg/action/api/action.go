package api

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/cmmoran/crudgen/internal/host"
	"github.com/cmmoran/crudgen/internal/model"
	"github.com/cmmoran/crudgen/internal/progress"
	"github.com/cmmoran/crudgen/pkg/generator"
	"github.com/cmmoran/crudgen/pkg/manifest"
	"github.com/cmmoran/crudgen/pkg/render"
)

// Result is the outcome of Generate. Changes is only set for dry runs.
type Result struct {
	Run     *model.Run
	Changes []generator.Change
}

// Generate runs the generator for resource in the project named by opts,
// reporting progress to out, and records the run in the project's ledger.
func Generate(ctx context.Context, opts *generator.Options, resource, columns string, out io.Writer) (*Result, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	disk := afero.NewBasePathFs(afero.NewOsFs(), opts.Project)
	return generate(ctx, disk, opts, resource, columns, out)
}

func generate(ctx context.Context, disk afero.Fs, opts *generator.Options, resource, columns string, out io.Writer) (*Result, error) {
	fsys := disk
	if opts.DryRun {
		fsys = generator.Overlay(disk)
	}

	project, err := host.Detect(disk)
	if err != nil {
		slog.Warn("unable to detect laravel version", "error", err)
	}
	slog.Debug("detected project", "framework", project.Framework, "driver", opts.Driver)

	var renderOpts []render.Option
	if opts.StubDir != "" {
		renderOpts = append(renderOpts, render.WithOverrides(os.DirFS(opts.StubDir)))
	}
	renderer := render.New(renderOpts...)

	var skeletons host.Skeletons
	switch opts.Driver {
	case generator.DriverNative:
		skeletons = &host.Native{Fs: fsys, Renderer: renderer, Layout: opts.Layout, Project: project}
	default:
		skeletons = &host.Artisan{Dir: opts.Project, PHP: opts.PHP, Layout: opts.Layout, Run: host.ExecRunner}
	}

	g := generator.New(fsys, skeletons, renderer, opts)
	g.Project = project
	g.Reporter = progress.NewTerminal(out)

	run, runErr := g.Run(ctx, resource, columns)
	res := &Result{Run: run}

	if opts.DryRun {
		if res.Changes, err = generator.Changes(disk, fsys, run); err != nil {
			return res, err
		}
		return res, runErr
	}

	m, err := manifest.Load(disk, opts.Manifest)
	if err == nil {
		m.AddRun(manifest.FromRun(run))
		err = m.Save(disk, opts.Manifest)
	}
	if err != nil {
		slog.Warn("unable to record run", "manifest", opts.Manifest, "error", err)
	}

	return res, runErr
}
