package engine

import (
	"sort"
	"time"

	"mkostiv/fitjournal/internal/domain"
)

// Point is one charted sample.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SeriesWindow bounds a chart query. Days == 0 covers the end date
// only, negative Days yields an empty series; AllTime ignores Days
// entirely.
type SeriesWindow struct {
	End     time.Time
	Days    int
	AllTime bool
}

func (w SeriesWindow) contains(date string) bool {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}
	end := w.End.Truncate(24 * time.Hour)
	if d.After(end) {
		return false
	}
	if w.AllTime {
		return true
	}
	start := end.AddDate(0, 0, -w.Days)
	return !d.Before(start)
}

// Series maps journals inside the window to {date, value} points for
// one metric, dropping days where the field does not resolve, sorted
// ascending by date.
func Series(journals []domain.Journal, source domain.MetricSource, field string, window SeriesWindow) []Point {
	points := make([]Point, 0, len(journals))
	for i := range journals {
		j := &journals[i]
		if !window.contains(j.Date) {
			continue
		}
		if v := Resolve(j, source, field); v != nil {
			points = append(points, Point{Date: j.Date, Value: *v})
		}
	}
	sort.Slice(points, func(a, b int) bool { return points[a].Date < points[b].Date })
	return points
}

// ExerciseLoadSeries charts average load per rep for a named exercise:
// per matching journal, sum(reps*weight) / sum(reps) over that day's
// sets. Zero-rep sets contribute nothing to either side, and days with
// zero total reps are dropped.
func ExerciseLoadSeries(journals []domain.Journal, exercise string, window SeriesWindow) []Point {
	points := make([]Point, 0)
	for i := range journals {
		j := &journals[i]
		if j.Workout == nil || !window.contains(j.Date) {
			continue
		}
		var totalLoad float64
		var totalReps int
		for _, ex := range j.Workout.Exercises {
			if ex.Name != exercise {
				continue
			}
			for _, set := range ex.Sets {
				if set.Reps <= 0 {
					continue
				}
				totalLoad += float64(set.Reps) * set.Weight
				totalReps += set.Reps
			}
		}
		if totalReps == 0 {
			continue
		}
		points = append(points, Point{Date: j.Date, Value: totalLoad / float64(totalReps)})
	}
	sort.Slice(points, func(a, b int) bool { return points[a].Date < points[b].Date })
	return points
}
