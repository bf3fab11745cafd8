// Package naming derives every class name, file path and namespace the
// generated Laravel artifacts refer to from a single resource name.
package naming

import (
	"path"
	"strings"
	"unicode"

	"github.com/ettle/strcase"
	"github.com/jinzhu/inflection"
)

// Layout describes where a Laravel project keeps each kind of artifact.
// Directories are slash separated and relative to the project root.
type Layout struct {
	RootNamespace  string `json:"root_namespace,omitempty" yaml:"root_namespace,omitempty" mapstructure:"root_namespace,omitempty"`
	AppDir         string `json:"app_dir,omitempty" yaml:"app_dir,omitempty" mapstructure:"app_dir,omitempty"`
	ModelsDir      string `json:"models_dir,omitempty" yaml:"models_dir,omitempty" mapstructure:"models_dir,omitempty"`
	ControllersDir string `json:"controllers_dir,omitempty" yaml:"controllers_dir,omitempty" mapstructure:"controllers_dir,omitempty"`
	ResourcesDir   string `json:"resources_dir,omitempty" yaml:"resources_dir,omitempty" mapstructure:"resources_dir,omitempty"`
	MigrationsDir  string `json:"migrations_dir,omitempty" yaml:"migrations_dir,omitempty" mapstructure:"migrations_dir,omitempty"`
	RoutesFile     string `json:"routes_file,omitempty" yaml:"routes_file,omitempty" mapstructure:"routes_file,omitempty"`
}

// DefaultLayout is the stock Laravel 8+ directory structure.
func DefaultLayout() Layout {
	return Layout{
		RootNamespace:  "App",
		AppDir:         "app",
		ModelsDir:      "app/Models",
		ControllersDir: "app/Http/Controllers",
		ResourcesDir:   "app/Http/Resources",
		MigrationsDir:  "database/migrations",
		RoutesFile:     "routes/api.php",
	}
}

// Normalize fills empty fields from DefaultLayout and cleans every path.
func (l *Layout) Normalize() {
	d := DefaultLayout()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&l.RootNamespace, d.RootNamespace)
	fill(&l.AppDir, d.AppDir)
	fill(&l.ModelsDir, d.ModelsDir)
	fill(&l.ControllersDir, d.ControllersDir)
	fill(&l.ResourcesDir, d.ResourcesDir)
	fill(&l.MigrationsDir, d.MigrationsDir)
	fill(&l.RoutesFile, d.RoutesFile)

	l.RootNamespace = strings.Trim(l.RootNamespace, `\`)
	for _, p := range []*string{&l.AppDir, &l.ModelsDir, &l.ControllersDir, &l.ResourcesDir, &l.MigrationsDir, &l.RoutesFile} {
		*p = path.Clean(strings.ReplaceAll(*p, `\`, "/"))
	}
}

// Names holds every derived form of a resource name.
type Names struct {
	Resource string // as supplied: "order_item"
	Singular string // "OrderItem"
	Plural   string // "OrderItems"

	RoutePath     string // kebab plural: "order-items"
	Table         string // snake plural: "order_items"
	MigrationGlob string // "*_create_order_items_table.php"

	ModelName      string
	ControllerName string
	ResourceName   string
	CollectionName string

	ModelPath      string
	ControllerPath string
	ResourcePath   string
	CollectionPath string

	// Fully qualified class names.
	ModelClass      string
	ControllerClass string
	ResourceClass   string
	CollectionClass string
}

// Resolve derives Names for resource under layout. It performs no I/O.
func Resolve(resource string, layout Layout) Names {
	layout.Normalize()

	singular := Studly(inflection.Singular(strings.TrimSpace(resource)))
	plural := inflection.Plural(singular)

	n := Names{
		Resource:       resource,
		Singular:       singular,
		Plural:         plural,
		RoutePath:      strcase.ToKebab(plural),
		Table:          strcase.ToSnake(plural),
		ModelName:      singular,
		ControllerName: singular + "Controller",
		ResourceName:   singular + "Resource",
		CollectionName: singular + "Collection",
	}
	n.MigrationGlob = "*_create_" + n.Table + "_table.php"

	n.ModelPath = path.Join(layout.ModelsDir, n.ModelName+".php")
	n.ControllerPath = path.Join(layout.ControllersDir, n.ControllerName+".php")
	n.ResourcePath = path.Join(layout.ResourcesDir, n.ResourceName+".php")
	n.CollectionPath = path.Join(layout.ResourcesDir, n.CollectionName+".php")

	n.ModelClass = Namespace(layout, n.ModelPath)
	n.ControllerClass = Namespace(layout, n.ControllerPath)
	n.ResourceClass = Namespace(layout, n.ResourcePath)
	n.CollectionClass = Namespace(layout, n.CollectionPath)

	return n
}

// Namespace maps a project relative PHP file path to the fully qualified
// class name it declares under PSR-4: the path relative to the app
// directory, without extension, with "/" replaced by "\".
func Namespace(layout Layout, file string) string {
	layout.Normalize()

	rel := path.Clean(strings.ReplaceAll(file, `\`, "/"))
	if rel == layout.AppDir {
		return layout.RootNamespace
	}
	rel = strings.TrimPrefix(rel, layout.AppDir+"/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	return layout.RootNamespace + `\` + strings.ReplaceAll(rel, "/", `\`)
}

// ClassNamespace returns the namespace portion of a fully qualified class name.
func ClassNamespace(fqcn string) string {
	if i := strings.LastIndex(fqcn, `\`); i >= 0 {
		return fqcn[:i]
	}
	return ""
}

// Studly converts a resource name to a PHP class name. Names that already
// start with an upper case letter and contain no separators are kept as
// given so acronyms such as "HTTPLog" survive.
func Studly(s string) string {
	if s == "" {
		return s
	}
	first := []rune(s)[0]
	if unicode.IsUpper(first) && !strings.ContainsAny(s, "_- ") {
		return s
	}
	return strcase.ToPascal(s)
}
