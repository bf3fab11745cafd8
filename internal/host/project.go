package host

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/mod/semver"
)

const frameworkPackage = "laravel/framework"

// Project describes the host Laravel installation.
type Project struct {
	// Framework is the canonical semantic version ("v10.48.2") of
	// laravel/framework, or "" when it could not be determined.
	Framework string
}

// Major returns the framework major version, 0 when unknown.
func (p Project) Major() int {
	if p.Framework == "" {
		return 0
	}
	var major int
	_, _ = fmt.Sscanf(strings.TrimPrefix(semver.Major(p.Framework), "v"), "%d", &major)
	return major
}

// AnonymousMigrations reports whether make:migration emits `return new class`
// migrations (Laravel 9+). Unknown versions are treated as current.
func (p Project) AnonymousMigrations() bool {
	return p.atLeast("v9")
}

// HasFactories reports whether models use the HasFactory trait (Laravel 8+).
func (p Project) HasFactories() bool {
	return p.atLeast("v8")
}

func (p Project) atLeast(v string) bool {
	return p.Framework == "" || semver.Compare(p.Framework, v) >= 0
}

type composerLock struct {
	Packages []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"packages"`
}

type composerJSON struct {
	Require map[string]string `json:"require"`
}

var versionRe = regexp.MustCompile(`\d+(?:\.\d+){0,2}`)

// Detect reads the installed framework version from composer.lock, falling
// back to the highest version named by the composer.json constraint.
func Detect(fsys afero.Fs) (Project, error) {
	if data, err := afero.ReadFile(fsys, "composer.lock"); err == nil {
		var lock composerLock
		if err = json.Unmarshal(data, &lock); err != nil {
			return Project{}, fmt.Errorf("parse composer.lock: %w", err)
		}
		for _, pkg := range lock.Packages {
			if pkg.Name == frameworkPackage {
				return Project{Framework: canonical(pkg.Version)}, nil
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Project{}, fmt.Errorf("read composer.lock: %w", err)
	}

	data, err := afero.ReadFile(fsys, "composer.json")
	if errors.Is(err, os.ErrNotExist) {
		return Project{}, nil
	}
	if err != nil {
		return Project{}, fmt.Errorf("read composer.json: %w", err)
	}
	var manifest composerJSON
	if err = json.Unmarshal(data, &manifest); err != nil {
		return Project{}, fmt.Errorf("parse composer.json: %w", err)
	}

	best := ""
	for _, v := range versionRe.FindAllString(manifest.Require[frameworkPackage], -1) {
		if c := canonical(v); c != "" && (best == "" || semver.Compare(c, best) > 0) {
			best = c
		}
	}
	return Project{Framework: best}, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}
