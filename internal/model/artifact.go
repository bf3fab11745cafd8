package model

import "fmt"

// Kind identifies one generated artifact.
type Kind int

const (
	KindInvalid Kind = iota
	KindModel
	KindMigration
	KindController
	KindResource
	KindCollection
	KindRoute
)

var kindNames = map[Kind]string{
	KindModel:      "model",
	KindMigration:  "migration",
	KindController: "controller",
	KindResource:   "resource",
	KindCollection: "collection",
	KindRoute:      "route",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Operation says how an artifact reached disk.
type Operation string

const (
	OpCreate Operation = "create" // new file (skeleton then content)
	OpPatch  Operation = "patch"  // rewritten in place
	OpAppend Operation = "append" // line appended to a shared file
)

// Artifact describes one file the generator renders, patches or appends to.
// Template and Placeholders are empty for artifacts that are not rendered.
type Artifact struct {
	Kind         Kind
	Path         string
	Operation    Operation
	Template     string
	Placeholders map[string]string

	// Created is set when the file did not exist before the run.
	Created bool
}
