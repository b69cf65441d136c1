package engine

import (
	"math"

	"mkostiv/fitjournal/internal/domain"
)

// maintainTolerance is the band around a maintain target, as a
// fraction of the target, inside which the goal counts as fully met.
const maintainTolerance = 0.02

// CurrentValue computes a goal's current value from the snapshot
// according to its fixed tracking mode. Journals must be sorted
// descending by date and already limited to the tracking window for
// rolling-average goals. Nil means "no data yet".
func CurrentValue(goal *domain.Goal, journals []domain.Journal, profile *domain.Profile) *float64 {
	switch goal.TrackingMode {
	case domain.TrackPointInTime:
		return LatestValue(journals, goal.Source, goal.Metric)
	case domain.TrackRollingAvg:
		return RollingAverage(journals, goal.Source, goal.Metric)
	case domain.TrackDerived:
		return WaistToHeightRatio(journals, profile)
	}
	return nil
}

// Progress scores how close current is to the goal's target.
//
// maintain yields a continuous closeness score: 100 inside the
// tolerance band, decaying with relative distance outside it.
// increase and decrease are deliberately all-or-nothing: 100 when the
// target is met, nil otherwise — the caller shows the raw current
// value instead of a partial percentage. A nil current always yields
// nil ("no data yet").
func Progress(goal *domain.Goal, current *float64) *float64 {
	if current == nil {
		return nil
	}
	switch goal.Direction {
	case domain.DirectionMaintain:
		diff := math.Abs(*current - goal.Target)
		if diff <= goal.Target*maintainTolerance {
			return scoreOf(100)
		}
		score := 100 - diff/goal.Target*100
		if score < 0 {
			score = 0
		}
		return scoreOf(score)
	case domain.DirectionDecrease:
		if *current <= goal.Target {
			return scoreOf(100)
		}
		return nil
	case domain.DirectionIncrease:
		if *current >= goal.Target {
			return scoreOf(100)
		}
		return nil
	}
	return nil
}

func scoreOf(v float64) *float64 {
	return &v
}
