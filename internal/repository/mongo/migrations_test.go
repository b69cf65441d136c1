package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// fakeSchemaStore keeps the version in memory and records every stamp.
type fakeSchemaStore struct {
	version    int
	stamps     []int
	versionErr error
	stampErr   error
}

func (s *fakeSchemaStore) Version(ctx context.Context) (int, error) {
	if s.versionErr != nil {
		return 0, s.versionErr
	}
	return s.version, nil
}

func (s *fakeSchemaStore) Stamp(ctx context.Context, version int) error {
	if s.stampErr != nil {
		return s.stampErr
	}
	s.version = version
	s.stamps = append(s.stamps, version)
	return nil
}

// recordedSteps builds steps that log run/stamp ordering into events.
func recordedSteps(events *[]string, failAt int) []migrationStep {
	steps := make([]migrationStep, 0, 3)
	for v := 1; v <= 3; v++ {
		version := v
		steps = append(steps, migrationStep{
			version: version,
			name:    fmt.Sprintf("step_%d", version),
			run: func(ctx context.Context, db *mongodriver.Database) error {
				if version == failAt {
					return errors.New("step failed")
				}
				*events = append(*events, fmt.Sprintf("run:%d", version))
				return nil
			},
		})
	}
	return steps
}

func TestApplyMigrationsRunsPendingStepsInOrder(t *testing.T) {
	var events []string
	store := &fakeSchemaStore{}

	err := applyMigrations(context.Background(), store, recordedSteps(&events, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"run:1", "run:2", "run:3"}, events)
	assert.Equal(t, []int{1, 2, 3}, store.stamps)
	assert.Equal(t, 3, store.version)
}

func TestApplyMigrationsSkipsAlreadyAppliedSteps(t *testing.T) {
	var events []string
	store := &fakeSchemaStore{version: 2}

	err := applyMigrations(context.Background(), store, recordedSteps(&events, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"run:3"}, events)
	assert.Equal(t, []int{3}, store.stamps)
}

func TestApplyMigrationsIsNoOpWhenUpToDate(t *testing.T) {
	var events []string
	store := &fakeSchemaStore{version: 3}

	err := applyMigrations(context.Background(), store, recordedSteps(&events, 0), nil)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, store.stamps)
}

func TestApplyMigrationsStopsOnFailureWithoutStamping(t *testing.T) {
	var events []string
	store := &fakeSchemaStore{}

	err := applyMigrations(context.Background(), store, recordedSteps(&events, 2), nil)
	require.Error(t, err)
	// Step 1 ran and was stamped; the failed step was not, and step 3
	// never started.
	assert.Equal(t, []string{"run:1"}, events)
	assert.Equal(t, []int{1}, store.stamps)
	assert.Equal(t, 1, store.version)
}

func TestApplyMigrationsResumesAfterFailure(t *testing.T) {
	var events []string
	store := &fakeSchemaStore{}

	require.Error(t, applyMigrations(context.Background(), store, recordedSteps(&events, 2), nil))

	// A second run against the partially stamped store picks up where
	// the failure happened, without re-running the applied step.
	events = nil
	err := applyMigrations(context.Background(), store, recordedSteps(&events, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"run:2", "run:3"}, events)
	assert.Equal(t, 3, store.version)
}

func TestApplyMigrationsSurfacesVersionReadFailure(t *testing.T) {
	var events []string
	store := &fakeSchemaStore{versionErr: errors.New("connection reset")}

	err := applyMigrations(context.Background(), store, recordedSteps(&events, 0), nil)
	require.Error(t, err)
	assert.Empty(t, events)
}

func TestApplyMigrationsStopsOnStampFailure(t *testing.T) {
	var events []string
	store := &fakeSchemaStore{stampErr: errors.New("write failed")}

	err := applyMigrations(context.Background(), store, recordedSteps(&events, 0), nil)
	require.Error(t, err)
	// The first step ran but could not be stamped, so the loop stops
	// before the next step.
	assert.Equal(t, []string{"run:1"}, events)
	assert.Empty(t, store.stamps)
}

func TestSchemaVersionMatchesLastRegisteredStep(t *testing.T) {
	require.NotEmpty(t, migrationSteps)
	assert.Equal(t, migrationSteps[len(migrationSteps)-1].version, SchemaVersion())

	// Steps are registered in strictly increasing version order; the
	// gate depends on it.
	for i := 1; i < len(migrationSteps); i++ {
		assert.Greater(t, migrationSteps[i].version, migrationSteps[i-1].version)
	}
}
