package repository

import (
	"context"

	"mkostiv/fitjournal/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("key already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// JournalRepository stores one journal per calendar date.
type JournalRepository interface {
	GetAll(ctx context.Context) ([]domain.Journal, error)
	GetByDate(ctx context.Context, date string) (*domain.Journal, error)
	Create(ctx context.Context, journal *domain.Journal) error // ErrDuplicateKey if the date exists
	Put(ctx context.Context, journal *domain.Journal) error    // upsert
	Update(ctx context.Context, date string, fields map[string]interface{}) error
	Delete(ctx context.Context, date string) error
}

// ProgramRepository stores user-defined training programs.
type ProgramRepository interface {
	GetAll(ctx context.Context) ([]domain.Program, error)
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	Create(ctx context.Context, program *domain.Program) error
	Put(ctx context.Context, program *domain.Program) error
	Delete(ctx context.Context, id string) error
}

// GoalRepository stores numeric goals bound to metrics.
type GoalRepository interface {
	GetAll(ctx context.Context) ([]domain.Goal, error)
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	Create(ctx context.Context, goal *domain.Goal) error
	Put(ctx context.Context, goal *domain.Goal) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// ProfileRepository stores the singleton profile. Get returns
// ErrNotFound before the first Put; the profile is never deleted.
type ProfileRepository interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Put(ctx context.Context, profile *domain.Profile) error
}

// SettingsRepository is the external key/value contract holding the
// single active-program pointer.
type SettingsRepository interface {
	GetActiveProgram(ctx context.Context) (string, error) // "" when unset
	SetActiveProgram(ctx context.Context, programID string) error
	ClearActiveProgram(ctx context.Context) error
}

// BundleStore performs the whole-store operations backup needs: a full
// snapshot read and the atomic clear-then-insert replacement.
type BundleStore interface {
	Snapshot(ctx context.Context) (*domain.Bundle, error)
	Replace(ctx context.Context, bundle *domain.Bundle) error
}
