// Package column parses the `name:type,...` column DSL accepted by the api
// command into an ordered list of validated column specs.
package column

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoColumns is returned when the column list is empty.
var ErrNoColumns = errors.New("at least one column is required")

// Spec is one validated column declaration.
type Spec struct {
	Name string
	Type Type
}

// String renders the declaration back into its `name:type` form.
func (s Spec) String() string {
	return s.Name + ":" + s.Type.String()
}

// MalformedDeclarationError reports a declaration that is not exactly one
// `name:type` pair.
type MalformedDeclarationError struct {
	Token  string
	Reason string
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("malformed column declaration %q: %s", e.Token, e.Reason)
}

// UnsupportedTypeError reports the first column type outside the whitelist.
// Supported carries the whole whitelist so the caller can correct the input.
type UnsupportedTypeError struct {
	Column    string
	Type      string
	Supported []string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("invalid column type: %s. Supported types are: %s", e.Type, strings.Join(e.Supported, ", "))
}

type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q is declared more than once", e.Name)
}

// Parse splits raw on "," and each declaration on ":". Parsing stops at the
// first invalid declaration; declaration order is preserved in the result.
func Parse(raw string) ([]Spec, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoColumns
	}

	decls := strings.Split(raw, ",")
	specs := make([]Spec, 0, len(decls))
	seen := make(map[string]struct{}, len(decls))

	for _, decl := range decls {
		spec, err := parseDeclaration(decl)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[spec.Name]; dup {
			return nil, &DuplicateColumnError{Name: spec.Name}
		}
		seen[spec.Name] = struct{}{}
		specs = append(specs, spec)
	}

	return specs, nil
}

func parseDeclaration(decl string) (Spec, error) {
	token := strings.TrimSpace(decl)
	parts := strings.Split(token, ":")
	switch {
	case len(parts) < 2:
		return Spec{}, &MalformedDeclarationError{Token: token, Reason: "expected 'name:type'"}
	case len(parts) > 2:
		return Spec{}, &MalformedDeclarationError{Token: token, Reason: "more than one ':'"}
	}

	name := strings.TrimSpace(parts[0])
	typeToken := strings.TrimSpace(parts[1])
	if name == "" {
		return Spec{}, &MalformedDeclarationError{Token: token, Reason: "empty column name"}
	}

	t, ok := ParseType(typeToken)
	if !ok {
		return Spec{}, &UnsupportedTypeError{Column: name, Type: typeToken, Supported: Supported()}
	}

	return Spec{Name: name, Type: t}, nil
}

// Names returns the column names in declaration order.
func Names(specs []Spec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}

// Format joins specs back into the DSL form accepted by Parse.
func Format(specs []Spec) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}
