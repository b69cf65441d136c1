package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/service"
)

// journalsWithDailyWeight builds n consecutive journals ending the day
// before today, each carrying the same daily weight.
func journalsWithDailyWeight(n int, weight float64) []domain.Journal {
	journals := make([]domain.Journal, 0, n)
	for i := 1; i <= n; i++ {
		date := time.Now().UTC().AddDate(0, 0, -i).Format(domain.DateLayout)
		journals = append(journals, domain.Journal{
			Date:  date,
			Daily: &domain.DailyMetrics{Weight: fptr(weight)},
		})
	}
	return journals
}

func TestCreateGoalDerivesSourceAndTrackingMode(t *testing.T) {
	goalRepo := newFakeGoalRepo()
	svc := service.NewGoalService(goalRepo, newFakeJournalRepo(), &fakeProfileRepo{})

	goal, err := svc.CreateGoal(context.Background(), "weight", 75, domain.DirectionDecrease, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceDaily, goal.Source)
	assert.Equal(t, domain.TrackRollingAvg, goal.TrackingMode)
	assert.NotEmpty(t, goal.ID)
	assert.False(t, goal.CreatedAt.IsZero())

	waist, err := svc.CreateGoal(context.Background(), "waist", 80, domain.DirectionDecrease, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceBody, waist.Source)
	assert.Equal(t, domain.TrackPointInTime, waist.TrackingMode)
}

func TestCreateGoalRejectsInvalidInput(t *testing.T) {
	svc := service.NewGoalService(newFakeGoalRepo(), newFakeJournalRepo(), &fakeProfileRepo{})

	_, err := svc.CreateGoal(context.Background(), "shoeSize", 44, domain.DirectionIncrease, nil)
	assert.ErrorIs(t, err, service.ErrUnknownMetric)

	_, err = svc.CreateGoal(context.Background(), "weight", 75, domain.GoalDirection("sideways"), nil)
	assert.ErrorIs(t, err, service.ErrGoalValidation)

	_, err = svc.CreateGoal(context.Background(), "weight", 0, domain.DirectionDecrease, nil)
	assert.ErrorIs(t, err, service.ErrGoalValidation)
}

func TestEvaluateGoalCompletesDecreaseGoalAtTarget(t *testing.T) {
	goalRepo := newFakeGoalRepo(domain.Goal{
		ID:           "g1",
		Metric:       "weight",
		Source:       domain.SourceDaily,
		TrackingMode: domain.TrackRollingAvg,
		Target:       75,
		Direction:    domain.DirectionDecrease,
	})
	journalRepo := newFakeJournalRepo(journalsWithDailyWeight(10, 74)...)
	svc := service.NewGoalService(goalRepo, journalRepo, &fakeProfileRepo{})

	result, err := svc.EvaluateGoal(context.Background(), "g1")
	require.NoError(t, err)
	require.NotNil(t, result.Current)
	assert.InDelta(t, 74, *result.Current, 1e-9)
	require.NotNil(t, result.Progress)
	assert.Equal(t, 100.0, *result.Progress)

	// Completion is persisted, not just reported.
	stored := goalRepo.goals["g1"]
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, result.Goal.IsCompleted())
}

func TestEvaluateGoalLeavesUnmetGoalOpen(t *testing.T) {
	goalRepo := newFakeGoalRepo(domain.Goal{
		ID:           "g1",
		Metric:       "weight",
		Source:       domain.SourceDaily,
		TrackingMode: domain.TrackRollingAvg,
		Target:       75,
		Direction:    domain.DirectionDecrease,
	})
	journalRepo := newFakeJournalRepo(journalsWithDailyWeight(10, 80)...)
	svc := service.NewGoalService(goalRepo, journalRepo, &fakeProfileRepo{})

	result, err := svc.EvaluateGoal(context.Background(), "g1")
	require.NoError(t, err)
	require.NotNil(t, result.Current)
	assert.Nil(t, result.Progress)

	stored := goalRepo.goals["g1"]
	assert.Nil(t, stored.CompletedAt)
}

func TestEvaluateGoalDoesNotRestampCompletedGoal(t *testing.T) {
	completed := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo(domain.Goal{
		ID:           "g1",
		Metric:       "weight",
		Source:       domain.SourceDaily,
		TrackingMode: domain.TrackRollingAvg,
		Target:       75,
		Direction:    domain.DirectionDecrease,
		CompletedAt:  &completed,
	})
	journalRepo := newFakeJournalRepo(journalsWithDailyWeight(10, 74)...)
	svc := service.NewGoalService(goalRepo, journalRepo, &fakeProfileRepo{})

	result, err := svc.EvaluateGoal(context.Background(), "g1")
	require.NoError(t, err)
	require.NotNil(t, result.Progress)
	assert.Equal(t, 100.0, *result.Progress)

	stored := goalRepo.goals["g1"]
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.CompletedAt.Equal(completed))
}

func TestEvaluateGoalWithNoDataYieldsNils(t *testing.T) {
	goalRepo := newFakeGoalRepo(domain.Goal{
		ID:           "g1",
		Metric:       "weight",
		Source:       domain.SourceDaily,
		TrackingMode: domain.TrackRollingAvg,
		Target:       75,
		Direction:    domain.DirectionMaintain,
	})
	svc := service.NewGoalService(goalRepo, newFakeJournalRepo(), &fakeProfileRepo{})

	result, err := svc.EvaluateGoal(context.Background(), "g1")
	require.NoError(t, err)
	assert.Nil(t, result.Current)
	assert.Nil(t, result.Progress)
	assert.Nil(t, goalRepo.goals["g1"].CompletedAt)
}

func TestEvaluateGoalUsesLegacyBodyWeight(t *testing.T) {
	// Records written before the daily-metrics move still carry weight
	// under body; evaluation must see them.
	goalRepo := newFakeGoalRepo(domain.Goal{
		ID:           "g1",
		Metric:       "weight",
		Source:       domain.SourceDaily,
		TrackingMode: domain.TrackRollingAvg,
		Target:       75,
		Direction:    domain.DirectionMaintain,
	})
	date := time.Now().UTC().AddDate(0, 0, -1).Format(domain.DateLayout)
	journalRepo := newFakeJournalRepo(domain.Journal{
		Date: date,
		Body: &domain.BodyMetrics{Weight: fptr(75)},
	})
	svc := service.NewGoalService(goalRepo, journalRepo, &fakeProfileRepo{})

	result, err := svc.EvaluateGoal(context.Background(), "g1")
	require.NoError(t, err)
	require.NotNil(t, result.Current)
	assert.InDelta(t, 75, *result.Current, 1e-9)
	require.NotNil(t, result.Progress)
	assert.Equal(t, 100.0, *result.Progress)
}

func TestReopenGoalClearsCompletion(t *testing.T) {
	completed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	goalRepo := newFakeGoalRepo(domain.Goal{
		ID:          "g1",
		Metric:      "weight",
		Target:      75,
		Direction:   domain.DirectionDecrease,
		CompletedAt: &completed,
	})
	svc := service.NewGoalService(goalRepo, newFakeJournalRepo(), &fakeProfileRepo{})

	goal, err := svc.ReopenGoal(context.Background(), "g1")
	require.NoError(t, err)
	assert.Nil(t, goal.CompletedAt)
	assert.Nil(t, goalRepo.goals["g1"].CompletedAt)
}

func TestReopenGoalMissing(t *testing.T) {
	svc := service.NewGoalService(newFakeGoalRepo(), newFakeJournalRepo(), &fakeProfileRepo{})

	_, err := svc.ReopenGoal(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrGoalNotFound)
}

func TestEvaluateAllSharesSnapshot(t *testing.T) {
	goalRepo := newFakeGoalRepo(
		domain.Goal{
			ID:           "g1",
			Metric:       "weight",
			Source:       domain.SourceDaily,
			TrackingMode: domain.TrackRollingAvg,
			Target:       74,
			Direction:    domain.DirectionDecrease,
		},
		domain.Goal{
			ID:           "g2",
			Metric:       "weight",
			Source:       domain.SourceDaily,
			TrackingMode: domain.TrackRollingAvg,
			Target:       70,
			Direction:    domain.DirectionDecrease,
		},
	)
	journalRepo := newFakeJournalRepo(journalsWithDailyWeight(5, 74)...)
	svc := service.NewGoalService(goalRepo, journalRepo, &fakeProfileRepo{})

	results, err := svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	byID := map[string]service.GoalProgress{}
	for _, r := range results {
		byID[r.Goal.ID] = r
	}
	require.NotNil(t, byID["g1"].Progress)
	assert.Equal(t, 100.0, *byID["g1"].Progress)
	assert.Nil(t, byID["g2"].Progress)
}
