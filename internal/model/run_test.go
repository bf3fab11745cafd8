package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAdvancesForwardOnly(t *testing.T) {
	r := NewRun("Order")
	require.NotEmpty(t, r.ID)

	require.NoError(t, r.Advance(StagePreflightChecked))
	require.NoError(t, r.Advance(StageParsed))
	require.Error(t, r.Advance(StagePreflightChecked))
	require.NoError(t, r.Advance(StageDone))
	require.Error(t, r.Advance(StageDone))
	assert.Equal(t, "done", r.Status())
	assert.False(t, r.EndedAt.IsZero())
}

func TestRunFail(t *testing.T) {
	r := NewRun("Order")
	require.NoError(t, r.Advance(StagePreflightChecked))

	cause := errors.New("boom")
	r.Fail(cause)
	r.Fail(errors.New("ignored"))

	assert.Equal(t, StageFailed, r.Stage)
	assert.Equal(t, "failed", r.Status())
	require.ErrorIs(t, r.Err, cause)

	var se *StageError
	require.ErrorAs(t, r.Err, &se)
	assert.Equal(t, StagePreflightChecked, se.Stage)
	require.Error(t, r.Advance(StageDone))
}

func TestRunDegraded(t *testing.T) {
	r := NewRun("Order")
	r.Warn(errors.New("migration file not found"))
	require.NoError(t, r.Advance(StageDone))
	assert.Equal(t, "degraded", r.Status())
	assert.Equal(t, []string{"migration file not found"}, r.Warnings)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "migration-patched", StageMigrationPatched.String())
	assert.Equal(t, "stage(99)", Stage(99).String())
	assert.Equal(t, "controller", KindController.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
