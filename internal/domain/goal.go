package domain

import (
	"time"
)

// MetricSource is the journal sub-document a metric is read from.
type MetricSource string

const (
	SourceBody    MetricSource = "body"
	SourceDaily   MetricSource = "daily"
	SourceDerived MetricSource = "derived"
)

// TrackingMode is how a goal's current value is computed.
type TrackingMode string

const (
	TrackPointInTime TrackingMode = "point-in-time"
	TrackRollingAvg  TrackingMode = "30-day-average"
	TrackDerived     TrackingMode = "derived"
)

// GoalDirection is the desired trend for a goal.
type GoalDirection string

const (
	DirectionIncrease GoalDirection = "increase"
	DirectionDecrease GoalDirection = "decrease"
	DirectionMaintain GoalDirection = "maintain"
)

// Goal binds a numeric target to a metric. Source and tracking mode are
// derived from the metric identity at creation and never user-set.
type Goal struct {
	ID           string        `bson:"_id" json:"id"`
	Metric       string        `bson:"metric" json:"metric"`
	Source       MetricSource  `bson:"source" json:"source"`
	TrackingMode TrackingMode  `bson:"trackingMode" json:"trackingMode"`
	Target       float64       `bson:"target" json:"target"` // canonical metric units
	Direction    GoalDirection `bson:"direction" json:"direction"`
	Deadline     *time.Time    `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	CompletedAt  *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// IsCompleted reports whether the goal has been marked done.
func (g *Goal) IsCompleted() bool {
	return g.CompletedAt != nil
}
