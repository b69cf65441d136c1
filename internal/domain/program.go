package domain

import (
	"time"
)

// Limits for exercises per program day, enforced at creation time.
const (
	MinExercisesPerDay = 3
	MaxExercisesPerDay = 6
)

// Program is a user-defined training program: an ordered list of days,
// each day an ordered list of exercise names. Days are 1-indexed by
// position when referenced from a journal's workout log.
type Program struct {
	ID        string     `bson:"_id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Days      [][]string `bson:"days" json:"days"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// DayCount returns the length of the rotation cycle.
func (p *Program) DayCount() int {
	return len(p.Days)
}
