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

// rollingWindowDays is the journal window for 30-day-average goals.
const rollingWindowDays = 30

// --- Error Definitions ---
var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrUnknownMetric = errors.New("unknown metric")
	ErrGoalValidation = errors.New("goal validation failed")
)

// GoalProgress is one goal with its evaluated state.
type GoalProgress struct {
	Goal     domain.Goal `json:"goal"`
	Current  *float64    `json:"current"`  // nil: no data yet
	Progress *float64    `json:"progress"` // nil: no data, or target not reached for increase/decrease
}

// GoalService manages goals and evaluates their progress. Evaluation
// that lands exactly on 100 completes the goal as a side effect.
type GoalService interface {
	CreateGoal(ctx context.Context, metric string, target float64, direction domain.GoalDirection, deadline *time.Time) (*domain.Goal, error)
	GetGoals(ctx context.Context) ([]domain.Goal, error)
	GetGoalByID(ctx context.Context, id string) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	ReopenGoal(ctx context.Context, id string) (*domain.Goal, error)

	EvaluateGoal(ctx context.Context, id string) (*GoalProgress, error)
	EvaluateAll(ctx context.Context) ([]GoalProgress, error)
}

type goalService struct {
	goalRepo    repository.GoalRepository
	journalRepo repository.JournalRepository
	profileRepo repository.ProfileRepository
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(
	goalRepo repository.GoalRepository,
	journalRepo repository.JournalRepository,
	profileRepo repository.ProfileRepository,
) GoalService {
	return &goalService{
		goalRepo:    goalRepo,
		journalRepo: journalRepo,
		profileRepo: profileRepo,
	}
}

// CreateGoal binds a target to a metric. Source and tracking mode come
// from the fixed metric table, never from the caller.
func (s *goalService) CreateGoal(ctx context.Context, metric string, target float64, direction domain.GoalDirection, deadline *time.Time) (*domain.Goal, error) {
	spec, ok := engine.LookupMetric(metric)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	switch direction {
	case domain.DirectionIncrease, domain.DirectionDecrease, domain.DirectionMaintain:
	default:
		return nil, fmt.Errorf("%w: direction %q", ErrGoalValidation, direction)
	}
	if target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive", ErrGoalValidation)
	}

	goal := &domain.Goal{
		Metric:       metric,
		Source:       spec.Source,
		TrackingMode: spec.TrackingMode,
		Target:       target,
		Direction:    direction,
		Deadline:     deadline,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return s.goalRepo.GetByID(ctx, goal.ID)
}

// GetGoals lists all goals; reads degrade to an empty list.
func (s *goalService) GetGoals(ctx context.Context) ([]domain.Goal, error) {
	goals, err := s.goalRepo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("goal list read failed, returning empty list")
		return []domain.Goal{}, nil
	}
	return goals, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, id string) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, id string) error {
	err := s.goalRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

// ReopenGoal clears completedAt so evaluation starts tracking again.
func (s *goalService) ReopenGoal(ctx context.Context, id string) (*domain.Goal, error) {
	if _, err := s.GetGoalByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Update(ctx, id, map[string]interface{}{"completedAt": nil}); err != nil {
		return nil, err
	}
	return s.GetGoalByID(ctx, id)
}

// EvaluateGoal computes the goal's current value and progress against
// a fresh snapshot. Reaching exactly 100 stamps completedAt; that side
// effect belongs to evaluation, not to a separate user action.
func (s *goalService) EvaluateGoal(ctx context.Context, id string) (*GoalProgress, error) {
	goal, err := s.GetGoalByID(ctx, id)
	if err != nil {
		return nil, err
	}

	journals, profile := s.snapshot(ctx)
	return s.evaluate(ctx, goal, journals, profile)
}

// EvaluateAll evaluates every goal against one shared snapshot.
func (s *goalService) EvaluateAll(ctx context.Context) ([]GoalProgress, error) {
	goals, err := s.GetGoals(ctx)
	if err != nil {
		return nil, err
	}

	journals, profile := s.snapshot(ctx)
	results := make([]GoalProgress, 0, len(goals))
	for i := range goals {
		progress, err := s.evaluate(ctx, &goals[i], journals, profile)
		if err != nil {
			return nil, err
		}
		results = append(results, *progress)
	}
	return results, nil
}

func (s *goalService) evaluate(ctx context.Context, goal *domain.Goal, journals []domain.Journal, profile *domain.Profile) (*GoalProgress, error) {
	window := journals
	if goal.TrackingMode == domain.TrackRollingAvg && len(window) > rollingWindowDays {
		window = window[:rollingWindowDays]
	}

	current := engine.CurrentValue(goal, window, profile)
	progress := engine.Progress(goal, current)

	if progress != nil && *progress == 100 && !goal.IsCompleted() {
		now := time.Now().UTC()
		if err := s.goalRepo.Update(ctx, goal.ID, map[string]interface{}{"completedAt": now}); err != nil {
			return nil, err
		}
		goal.CompletedAt = &now
	}

	return &GoalProgress{Goal: *goal, Current: current, Progress: progress}, nil
}

// snapshot loads the journal history (descending by date) and profile,
// degrading both to safe defaults on read failure.
func (s *goalService) snapshot(ctx context.Context) ([]domain.Journal, *domain.Profile) {
	journals, err := s.journalRepo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("journal snapshot read failed, evaluating with no data")
		journals = nil
	}

	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).Warn("profile read failed, evaluating without profile")
		}
		profile = nil
	}
	return journals, profile
}
