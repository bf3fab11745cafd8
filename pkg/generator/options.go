package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cmmoran/crudgen/pkg/naming"
)

const (
	DriverArtisan = "artisan"
	DriverNative  = "native"
)

// Options control where and how artifacts are generated.
//
// Project          – Laravel project root
// Layout           – project relative artifact directories and root namespace
// StubDir          – directory whose *.stub files replace the bundled stubs
// Driver           – skeleton driver: "artisan" runs php artisan make:*, "native" writes bundled skeletons
// PHP              – php binary used by the artisan driver
// PerPage          – page size of the generated index action
// DryRun           – compute the changes without touching the project (forces the native driver)
// CleanupOnFailure – remove files created by a run that fails
// Manifest         – run ledger, relative to Project
type Options struct {
	Project          string        `json:"project,omitempty" yaml:"project,omitempty" mapstructure:"project,omitempty"`
	Layout           naming.Layout `json:"layout,omitempty" yaml:"layout,omitempty" mapstructure:"layout,omitempty"`
	StubDir          string        `json:"stub_dir,omitempty" yaml:"stub_dir,omitempty" mapstructure:"stub_dir,omitempty"`
	Driver           string        `json:"driver,omitempty" yaml:"driver,omitempty" mapstructure:"driver,omitempty"`
	PHP              string        `json:"php,omitempty" yaml:"php,omitempty" mapstructure:"php,omitempty"`
	PerPage          int           `json:"per_page,omitempty" yaml:"per_page,omitempty" mapstructure:"per_page,omitempty"`
	DryRun           bool          `json:"dry_run,omitempty" yaml:"dry_run,omitempty" mapstructure:"dry_run,omitempty"`
	CleanupOnFailure bool          `json:"cleanup_on_failure,omitempty" yaml:"cleanup_on_failure,omitempty" mapstructure:"cleanup_on_failure,omitempty"`
	Manifest         string        `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
}

func NewOptions(opts ...Option) *Options {
	o := &Options{
		Project:  ".",
		Layout:   naming.DefaultLayout(),
		Driver:   DriverArtisan,
		PHP:      "php",
		PerPage:  10,
		Manifest: ".crudgen/manifest.yaml",
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Normalize fills defaults for empty fields and rejects unknown drivers.
func (o *Options) Normalize() error {
	if strings.TrimSpace(o.Project) == "" {
		o.Project = "."
	}
	if abs, err := filepath.Abs(o.Project); err == nil {
		o.Project = abs
	}
	if o.StubDir != "" && !filepath.IsAbs(o.StubDir) {
		o.StubDir = filepath.Join(o.Project, o.StubDir)
	}
	o.Layout.Normalize()

	o.Driver = strings.ToLower(strings.TrimSpace(o.Driver))
	switch o.Driver {
	case "":
		o.Driver = DriverArtisan
	case DriverArtisan, DriverNative:
	default:
		return fmt.Errorf("unknown driver %q, expected %s or %s", o.Driver, DriverArtisan, DriverNative)
	}
	if o.DryRun {
		o.Driver = DriverNative
	}

	if o.PHP == "" {
		o.PHP = "php"
	}
	if o.PerPage <= 0 {
		o.PerPage = 10
	}
	if o.Manifest == "" {
		o.Manifest = ".crudgen/manifest.yaml"
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithProject(d string) Option       { return func(o *Options) { o.Project = d } }
func WithLayout(l naming.Layout) Option { return func(o *Options) { o.Layout = l } }
func WithStubDir(d string) Option       { return func(o *Options) { o.StubDir = d } }
func WithDriver(d string) Option        { return func(o *Options) { o.Driver = d } }
func WithPHP(bin string) Option         { return func(o *Options) { o.PHP = bin } }
func WithPerPage(n int) Option          { return func(o *Options) { o.PerPage = n } }
func WithDryRun() Option                { return func(o *Options) { o.DryRun = true } }
func WithCleanupOnFailure() Option      { return func(o *Options) { o.CleanupOnFailure = true } }
func WithManifest(p string) Option      { return func(o *Options) { o.Manifest = p } }
