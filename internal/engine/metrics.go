package engine

import (
	"mkostiv/fitjournal/internal/domain"
)

// MetricSpec fixes where a metric is read from and how a goal against
// it computes its current value. The pair is a property of the metric
// identity and is never configurable per goal.
type MetricSpec struct {
	Source       domain.MetricSource
	TrackingMode domain.TrackingMode
}

var metricTable = map[string]MetricSpec{
	"weight":    {domain.SourceDaily, domain.TrackRollingAvg},
	"restingHR": {domain.SourceDaily, domain.TrackRollingAvg},
	"bodyFat":   {domain.SourceBody, domain.TrackRollingAvg},
	"calories":  {domain.SourceDaily, domain.TrackRollingAvg},
	"protein":   {domain.SourceDaily, domain.TrackRollingAvg},
	"fibre":     {domain.SourceDaily, domain.TrackRollingAvg},
	"water":     {domain.SourceDaily, domain.TrackRollingAvg},
	"steps":     {domain.SourceDaily, domain.TrackRollingAvg},
	"sleep":     {domain.SourceDaily, domain.TrackRollingAvg},
	"recovery":  {domain.SourceDaily, domain.TrackRollingAvg},

	"waistToHeightRatio": {domain.SourceDerived, domain.TrackDerived},
}

func init() {
	for _, f := range domain.CircumferenceFields {
		metricTable[f] = MetricSpec{domain.SourceBody, domain.TrackPointInTime}
	}
}

// LookupMetric returns the fixed spec for a metric identity.
func LookupMetric(metric string) (MetricSpec, bool) {
	spec, ok := metricTable[metric]
	return spec, ok
}
