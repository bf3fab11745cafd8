package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cmmoran/crudgen/pkg/column"
)

// Stage is a state of the generation state machine.
type Stage int

const (
	StageInit Stage = iota
	StagePreflightChecked
	StageParsed
	StageModelCreated
	StageControllerCreated
	StageMigrationPatched
	StageRouteAdded
	StageResourceCreated
	StageCollectionCreated
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageInit:              "init",
	StagePreflightChecked:  "preflight-checked",
	StageParsed:            "parsed",
	StageModelCreated:      "model-created",
	StageControllerCreated: "controller-created",
	StageMigrationPatched:  "migration-patched",
	StageRouteAdded:        "route-added",
	StageResourceCreated:   "resource-created",
	StageCollectionCreated: "collection-created",
	StageDone:              "done",
	StageFailed:            "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Steps is the number of progress steps a complete run advances through.
const Steps = 7

// Run is one invocation of the generator.
type Run struct {
	ID        string
	Resource  string
	Columns   []column.Spec
	Stage     Stage
	Step      int
	Artifacts []Artifact
	Warnings  []string
	Degraded  bool
	Err       error
	StartedAt time.Time
	EndedAt   time.Time
}

func NewRun(resource string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Resource:  resource,
		Stage:     StageInit,
		StartedAt: time.Now(),
	}
}

// Advance moves the run to next. Stages only move forward; a failed or
// finished run does not move again.
func (r *Run) Advance(next Stage) error {
	if r.Stage == StageFailed || r.Stage == StageDone {
		return fmt.Errorf("run %s is terminal (%s)", r.ID, r.Stage)
	}
	if next <= r.Stage {
		return fmt.Errorf("run %s cannot move from %s back to %s", r.ID, r.Stage, next)
	}
	r.Stage = next
	if next == StageDone {
		r.EndedAt = time.Now()
	}
	return nil
}

// Fail moves the run to StageFailed, remembering the stage it failed in.
func (r *Run) Fail(err error) {
	if r.Stage == StageFailed {
		return
	}
	r.Err = &StageError{Stage: r.Stage, Err: err}
	r.Stage = StageFailed
	r.EndedAt = time.Now()
}

// Warn records a non fatal problem and marks the run degraded.
func (r *Run) Warn(err error) {
	r.Degraded = true
	r.Warnings = append(r.Warnings, err.Error())
}

func (r *Run) Record(a Artifact) {
	r.Artifacts = append(r.Artifacts, a)
}

// Status is a short label for the ledger.
func (r *Run) Status() string {
	switch {
	case r.Stage == StageFailed:
		return "failed"
	case r.Stage == StageDone && r.Degraded:
		return "degraded"
	case r.Stage == StageDone:
		return "done"
	default:
		return "running"
	}
}

// StageError wraps the error that failed a run with the last stage reached.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("after %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
