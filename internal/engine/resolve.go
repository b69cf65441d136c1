// Package engine holds the pure metric resolution, aggregation,
// day-rotation and goal-progress logic. Every function here takes a
// snapshot of journals/programs/profile as arguments and performs no
// I/O, so the HTTP layer can call it with whatever the store returned.
package engine

import (
	"mkostiv/fitjournal/internal/domain"
)

// migratedDailyFields are metrics whose canonical location moved from
// body to daily across schema versions. Resolution for these falls
// back to the legacy body location when daily has no value. This table
// is the single source of truth for "where does this field live".
var migratedDailyFields = map[string]bool{
	"weight":    true,
	"restingHR": true,
}

// Resolve reads a single metric value out of one journal, tolerating
// schema drift. Returns nil when the day has no value for the field.
func Resolve(j *domain.Journal, source domain.MetricSource, field string) *float64 {
	if j == nil {
		return nil
	}
	switch source {
	case domain.SourceBody:
		return resolveBody(j.Body, field)
	case domain.SourceDaily:
		if v := resolveDaily(j.Daily, field); v != nil {
			return v
		}
		if migratedDailyFields[field] {
			return resolveBody(j.Body, field)
		}
		return nil
	}
	return nil
}

func resolveBody(b *domain.BodyMetrics, field string) *float64 {
	if b == nil {
		return nil
	}
	if domain.IsCircumferenceField(field) {
		if v, ok := b.Circumferences[field]; ok {
			return &v
		}
		return nil
	}
	switch field {
	case "weight":
		return b.Weight
	case "bodyFat":
		return b.BodyFat
	case "restingHR":
		return b.RestingHR
	}
	return nil
}

func resolveDaily(d *domain.DailyMetrics, field string) *float64 {
	if d == nil {
		return nil
	}
	switch field {
	case "weight":
		return d.Weight
	case "calories":
		return d.Calories
	case "protein":
		return d.Protein
	case "fibre":
		return d.Fibre
	case "water":
		return d.Water
	case "steps":
		return d.Steps
	case "sleep":
		return d.Sleep
	case "recovery":
		return d.Recovery
	case "restingHR":
		return d.RestingHR
	}
	return nil
}

// RollingAverage resolves field on each journal and returns the mean
// of the values that are present, or nil when none are. Callers pass
// journals already restricted to the window they care about (the most
// recent 30 for goal tracking). A recorded zero counts as present.
func RollingAverage(journals []domain.Journal, source domain.MetricSource, field string) *float64 {
	var sum float64
	var n int
	for i := range journals {
		if v := Resolve(&journals[i], source, field); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// LatestValue returns the first present value scanning journals in the
// given order (callers sort descending by date), or nil.
func LatestValue(journals []domain.Journal, source domain.MetricSource, field string) *float64 {
	for i := range journals {
		if v := Resolve(&journals[i], source, field); v != nil {
			return v
		}
	}
	return nil
}

// WaistToHeightRatio derives waist circumference over profile height.
// Either side missing means no ratio; a missing or zero height is
// never divided by.
func WaistToHeightRatio(journals []domain.Journal, profile *domain.Profile) *float64 {
	if profile == nil || profile.HeightCm == nil || *profile.HeightCm <= 0 {
		return nil
	}
	waist := LatestValue(journals, domain.SourceBody, "waist")
	if waist == nil {
		return nil
	}
	ratio := *waist / *profile.HeightCm
	return &ratio
}
