// Package render turns the embedded (or user supplied) Laravel stubs into
// source text by substituting `{{ key }}` placeholders.
package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed stubs/*.stub
var embedded embed.FS

// TemplateID names one stub. The stub file is "<id>.stub".
type TemplateID string

const (
	Model             TemplateID = "model"
	ModelJSONAccessor TemplateID = "model_json_accessor"
	ModelFilterScope  TemplateID = "model_filter_scope"
	Controller        TemplateID = "controller"
	Resource          TemplateID = "resource"

	SkeletonModel           TemplateID = "skeleton_model"
	SkeletonMigration       TemplateID = "skeleton_migration"
	SkeletonMigrationLegacy TemplateID = "skeleton_migration_legacy"
	SkeletonController      TemplateID = "skeleton_controller"
	SkeletonResource        TemplateID = "skeleton_resource"
	SkeletonCollection      TemplateID = "skeleton_collection"
)

// placeholders lists the keys each stub may reference. Callers supply all of
// them; an unknown key renders as an empty string.
var placeholders = map[TemplateID][]string{
	Model:             {"namespace", "traitImports", "modelName", "traitUse", "fillable", "accessors", "filterScope"},
	ModelJSONAccessor: {"column", "studly"},
	ModelFilterScope:  {},
	Controller: {
		"namespace", "controllerName", "modelName", "modelNamespace",
		"resourceName", "resourceNamespace", "collectionName", "collectionNamespace", "perPage",
	},
	Resource: {"namespace", "resourceName", "resourceFields"},

	SkeletonModel:           {"namespace", "traitImports", "modelName", "body"},
	SkeletonMigration:       {"table"},
	SkeletonMigrationLegacy: {"className", "table"},
	SkeletonController:      {"namespace", "controllerName"},
	SkeletonResource:        {"namespace", "resourceName"},
	SkeletonCollection:      {"namespace", "collectionName"},
}

// ErrUnknownTemplate is returned for a TemplateID with no stub.
var ErrUnknownTemplate = errors.New("unknown template")

// Placeholders returns the declared placeholder keys of id.
func Placeholders(id TemplateID) []string {
	return append([]string(nil), placeholders[id]...)
}

// Templates returns every known template id.
func Templates() []TemplateID {
	out := make([]TemplateID, 0, len(placeholders))
	for id := range placeholders {
		out = append(out, id)
	}
	return out
}

// Renderer renders stubs. Stubs found in the override file system replace
// the embedded ones of the same name.
type Renderer struct {
	stubs     fs.FS
	overrides fs.FS

	mu    sync.Mutex
	cache map[TemplateID]*pongo2.Template
}

type Option func(*Renderer)

// WithOverrides makes stubs in fsys take precedence over the embedded set.
func WithOverrides(fsys fs.FS) Option {
	return func(r *Renderer) { r.overrides = fsys }
}

func New(opts ...Option) *Renderer {
	sub, _ := fs.Sub(embedded, "stubs")
	r := &Renderer{
		stubs: sub,
		cache: make(map[TemplateID]*pongo2.Template),
	}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// Source returns the raw stub text for id.
func (r *Renderer) Source(id TemplateID) (string, error) {
	if _, ok := placeholders[id]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	name := path.Clean(string(id) + ".stub")
	if r.overrides != nil {
		if b, err := fs.ReadFile(r.overrides, name); err == nil {
			return string(b), nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read stub override %s: %w", name, err)
		}
	}
	b, err := fs.ReadFile(r.stubs, name)
	if err != nil {
		return "", fmt.Errorf("read stub %s: %w", name, err)
	}
	return string(b), nil
}

// Render substitutes values into the stub named by id.
func (r *Renderer) Render(id TemplateID, values map[string]string) (string, error) {
	tpl, err := r.template(id)
	if err != nil {
		return "", err
	}

	ctx := make(pongo2.Context, len(values))
	for k, v := range values {
		ctx[k] = v
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", id, err)
	}
	return out, nil
}

func (r *Renderer) template(id TemplateID) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}
	src, err := r.Source(id)
	if err != nil {
		return nil, err
	}
	// generated output is PHP, never HTML
	tpl, err := pongo2.FromString("{% autoescape off %}" + src + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("parse stub %s: %w", id, err)
	}
	r.cache[id] = tpl
	return tpl, nil
}
