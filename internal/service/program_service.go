package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/engine"
	"mkostiv/fitjournal/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound   = errors.New("program not found")
	ErrProgramValidation = errors.New("program validation failed")
)

// ProgramService manages training programs, the active-program pointer
// and the day-rotation suggestion.
type ProgramService interface {
	CreateProgram(ctx context.Context, name string, days [][]string) (*domain.Program, error)
	GetPrograms(ctx context.Context) ([]domain.Program, error)
	GetProgramByID(ctx context.Context, id string) (*domain.Program, error)
	UpdateProgram(ctx context.Context, id, name string, days [][]string) (*domain.Program, error)
	DeleteProgram(ctx context.Context, id string) error

	NextWorkoutDay(ctx context.Context, programID string) (int, error)

	ActiveProgram(ctx context.Context) (string, error)
	SetActiveProgram(ctx context.Context, programID string) error
	ClearActiveProgram(ctx context.Context) error
}

type programService struct {
	programRepo  repository.ProgramRepository
	journalRepo  repository.JournalRepository
	settingsRepo repository.SettingsRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	journalRepo repository.JournalRepository,
	settingsRepo repository.SettingsRepository,
) ProgramService {
	return &programService{
		programRepo:  programRepo,
		journalRepo:  journalRepo,
		settingsRepo: settingsRepo,
	}
}

// validateDays enforces the 3-6 exercises per day rule at creation and
// update time.
func validateDays(days [][]string) error {
	if len(days) == 0 {
		return fmt.Errorf("%w: a program needs at least one day", ErrProgramValidation)
	}
	for i, day := range days {
		if len(day) < domain.MinExercisesPerDay || len(day) > domain.MaxExercisesPerDay {
			return fmt.Errorf("%w: day %d has %d exercises, want %d-%d",
				ErrProgramValidation, i+1, len(day), domain.MinExercisesPerDay, domain.MaxExercisesPerDay)
		}
		for _, exercise := range day {
			if exercise == "" {
				return fmt.Errorf("%w: day %d contains an empty exercise name", ErrProgramValidation, i+1)
			}
		}
	}
	return nil
}

func (s *programService) CreateProgram(ctx context.Context, name string, days [][]string) (*domain.Program, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrProgramValidation)
	}
	if err := validateDays(days); err != nil {
		return nil, err
	}

	program := &domain.Program{
		Name: name,
		Days: days,
	}
	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return s.programRepo.GetByID(ctx, program.ID)
}

// GetPrograms lists all programs; a storage failure degrades to an
// empty list with a logged warning.
func (s *programService) GetPrograms(ctx context.Context) ([]domain.Program, error) {
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("program list read failed, returning empty list")
		return []domain.Program{}, nil
	}
	return programs, nil
}

func (s *programService) GetProgramByID(ctx context.Context, id string) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

func (s *programService) UpdateProgram(ctx context.Context, id, name string, days [][]string) (*domain.Program, error) {
	program, err := s.GetProgramByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrProgramValidation)
	}
	if err := validateDays(days); err != nil {
		return nil, err
	}

	program.Name = name
	program.Days = days
	if err := s.programRepo.Put(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// DeleteProgram removes a program permanently. When the active pointer
// references the deleted program it is cleared as part of the same
// operation.
func (s *programService) DeleteProgram(ctx context.Context, id string) error {
	if err := s.programRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}

	active, err := s.settingsRepo.GetActiveProgram(ctx)
	if err != nil {
		logrus.WithError(err).Warn("active program read failed after delete")
		return nil
	}
	if active == id {
		if err := s.settingsRepo.ClearActiveProgram(ctx); err != nil {
			return err
		}
	}
	return nil
}

// NextWorkoutDay recomputes the rotation pointer from journal history.
// A storage failure on the history read degrades to the first day.
func (s *programService) NextWorkoutDay(ctx context.Context, programID string) (int, error) {
	program, err := s.GetProgramByID(ctx, programID)
	if err != nil {
		return 0, err
	}

	journals, err := s.journalRepo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("journal history read failed, suggesting day 1")
		journals = nil
	}

	today := time.Now().UTC().Format(domain.DateLayout)
	return engine.NextDay(program, journals, today), nil
}

func (s *programService) ActiveProgram(ctx context.Context) (string, error) {
	return s.settingsRepo.GetActiveProgram(ctx)
}

// SetActiveProgram points the single active-program setting at an
// existing program.
func (s *programService) SetActiveProgram(ctx context.Context, programID string) error {
	if _, err := s.GetProgramByID(ctx, programID); err != nil {
		return err
	}
	return s.settingsRepo.SetActiveProgram(ctx, programID)
}

func (s *programService) ClearActiveProgram(ctx context.Context) error {
	return s.settingsRepo.ClearActiveProgram(ctx)
}
