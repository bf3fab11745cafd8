package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/crudgen/internal/model"
	"github.com/cmmoran/crudgen/pkg/column"
)

// Artifact is a file a run created or changed.
type Artifact struct {
	Kind      string `yaml:"kind" json:"kind"`
	Path      string `yaml:"path" json:"path"`
	Operation string `yaml:"operation" json:"operation"`
	Template  string `yaml:"template,omitempty" json:"template,omitempty"`
}

// Run represents one generation run recorded in the manifest.
type Run struct {
	ID        string     `yaml:"id" json:"id"`
	Resource  string     `yaml:"resource" json:"resource"`
	Columns   string     `yaml:"columns" json:"columns"`
	Status    string     `yaml:"status" json:"status"`
	DryRun    bool       `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
	Artifacts []Artifact `yaml:"artifacts,omitempty" json:"artifacts,omitempty"`
	Warnings  []string   `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Error     string     `yaml:"error,omitempty" json:"error,omitempty"`
	StartedAt time.Time  `yaml:"started_at" json:"started_at"`
	EndedAt   time.Time  `yaml:"ended_at" json:"ended_at"`
}

// Manifest is the ledger of generation runs in a project.
type Manifest struct {
	Runs []Run `yaml:"runs" json:"runs"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// FromRun converts a generator run into its ledger entry.
func FromRun(r *model.Run) Run {
	entry := Run{
		ID:        r.ID,
		Resource:  r.Resource,
		Columns:   column.Format(r.Columns),
		Status:    r.Status(),
		Warnings:  append([]string(nil), r.Warnings...),
		StartedAt: r.StartedAt.UTC(),
		EndedAt:   r.EndedAt.UTC(),
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	for _, a := range r.Artifacts {
		entry.Artifacts = append(entry.Artifacts, Artifact{
			Kind:      a.Kind.String(),
			Path:      a.Path,
			Operation: string(a.Operation),
			Template:  a.Template,
		})
	}
	return entry
}

// AddRun records a run, replacing an existing entry with the same id.
func (m *Manifest) AddRun(r Run) {
	for i := range m.Runs {
		if m.Runs[i].ID == r.ID {
			m.Runs[i] = r
			return
		}
	}
	m.Runs = append(m.Runs, r)
}

// RunsFor returns the runs of resource in recording order; every run when
// resource is empty.
func (m *Manifest) RunsFor(resource string) []Run {
	if resource == "" {
		return append([]Run(nil), m.Runs...)
	}
	var out []Run
	for _, r := range m.Runs {
		if r.Resource == resource {
			out = append(out, r)
		}
	}
	return out
}
