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

// MetricsService answers chart and summary queries by feeding store
// snapshots through the pure engine.
type MetricsService interface {
	Series(ctx context.Context, metric string, window engine.SeriesWindow) ([]engine.Point, error)
	ExerciseSeries(ctx context.Context, exercise string, window engine.SeriesWindow) ([]engine.Point, error)
	LatestValue(ctx context.Context, metric string) (*float64, error)
	RollingAverage(ctx context.Context, metric string, days int) (*float64, error)
}

type metricsService struct {
	journalRepo repository.JournalRepository
	profileRepo repository.ProfileRepository
}

// NewMetricsService creates a new instance of metricsService.
func NewMetricsService(journalRepo repository.JournalRepository, profileRepo repository.ProfileRepository) MetricsService {
	return &metricsService{journalRepo: journalRepo, profileRepo: profileRepo}
}

// Series returns the {date, value} chart points for a metric. The
// derived waist-to-height ratio has no per-day series; callers chart
// the waist circumference instead.
func (s *metricsService) Series(ctx context.Context, metric string, window engine.SeriesWindow) ([]engine.Point, error) {
	spec, ok := engine.LookupMetric(metric)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if spec.Source == domain.SourceDerived {
		return nil, fmt.Errorf("%w: %q has no time series", ErrUnknownMetric, metric)
	}

	journals := s.journals(ctx)
	return engine.Series(journals, spec.Source, metric, window), nil
}

// ExerciseSeries charts average load per rep for one named exercise.
func (s *metricsService) ExerciseSeries(ctx context.Context, exercise string, window engine.SeriesWindow) ([]engine.Point, error) {
	if exercise == "" {
		return nil, errors.New("exercise name is required")
	}
	journals := s.journals(ctx)
	return engine.ExerciseLoadSeries(journals, exercise, window), nil
}

// LatestValue resolves the most recent recorded value for a metric,
// nil when nothing was ever recorded.
func (s *metricsService) LatestValue(ctx context.Context, metric string) (*float64, error) {
	spec, ok := engine.LookupMetric(metric)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	journals := s.journals(ctx)

	if spec.Source == domain.SourceDerived {
		return engine.WaistToHeightRatio(journals, s.profile(ctx)), nil
	}
	return engine.LatestValue(journals, spec.Source, metric), nil
}

// RollingAverage averages a metric over the most recent days entries.
func (s *metricsService) RollingAverage(ctx context.Context, metric string, days int) (*float64, error) {
	spec, ok := engine.LookupMetric(metric)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if spec.Source == domain.SourceDerived {
		return nil, fmt.Errorf("%w: %q cannot be averaged", ErrUnknownMetric, metric)
	}
	if days <= 0 {
		days = rollingWindowDays
	}

	journals := s.journals(ctx)
	if len(journals) > days {
		journals = journals[:days]
	}
	return engine.RollingAverage(journals, spec.Source, metric), nil
}

func (s *metricsService) journals(ctx context.Context) []domain.Journal {
	journals, err := s.journalRepo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("journal snapshot read failed, charting no data")
		return nil
	}
	return journals
}

func (s *metricsService) profile(ctx context.Context) *domain.Profile {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).Warn("profile read failed")
		}
		return nil
	}
	return profile
}

// DefaultWindow is the chart window ending today covering the last
// days calendar days, or all history when days <= 0.
func DefaultWindow(days int) engine.SeriesWindow {
	return engine.SeriesWindow{
		End:     time.Now().UTC(),
		Days:    days,
		AllTime: days <= 0,
	}
}
