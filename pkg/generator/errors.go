package generator

import (
	"errors"
	"fmt"

	"github.com/cmmoran/crudgen/internal/model"
)

var ErrResourceRequired = errors.New("resource name and columns are required")

// AlreadyExistsError is returned by pre-flight when the model or controller
// of the resource is already present. Nothing has been written.
type AlreadyExistsError struct {
	Resource string
	Path     string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("resource %s already exists: %s", e.Resource, e.Path)
}

// SkeletonError wraps a failure of the host driver to create a skeleton.
type SkeletonError struct {
	Kind model.Kind
	Err  error
}

func (e *SkeletonError) Error() string {
	return fmt.Sprintf("create %s skeleton: %v", e.Kind, e.Err)
}

func (e *SkeletonError) Unwrap() error {
	return e.Err
}
