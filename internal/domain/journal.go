package domain

import (
	"time"
)

// DateLayout is the canonical key format for journal entries.
const DateLayout = "2006-01-02"

// Journal holds everything a user recorded for one calendar day.
// Absent sub-objects mean "not recorded that day", which is distinct
// from a recorded zero, so every sub-structure is a pointer.
type Journal struct {
	Date         string        `bson:"_id" json:"date"` // YYYY-MM-DD, unique per day
	Body         *BodyMetrics  `bson:"body,omitempty" json:"body,omitempty"`
	Daily        *DailyMetrics `bson:"daily,omitempty" json:"daily,omitempty"`
	Workout      *WorkoutLog   `bson:"workout,omitempty" json:"workout,omitempty"`
	Notes        string        `bson:"notes,omitempty" json:"notes,omitempty"`
	LastModified time.Time     `bson:"lastModified" json:"lastModified"`
}

// BodyMetrics are measurements taken of the body itself.
// Weight and RestingHR may still appear here in records written by
// older schema versions; current records carry them under Daily.
type BodyMetrics struct {
	Weight         *float64           `bson:"weight,omitempty" json:"weight,omitempty"`       // kg
	BodyFat        *float64           `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`     // percent
	RestingHR      *float64           `bson:"restingHR,omitempty" json:"restingHR,omitempty"` // bpm
	Circumferences map[string]float64 `bson:"circumferences,omitempty" json:"circumferences,omitempty"` // cm
}

// DailyMetrics are the day's nutrition and activity numbers.
type DailyMetrics struct {
	Weight    *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Calories  *float64 `bson:"calories,omitempty" json:"calories,omitempty"`
	Protein   *float64 `bson:"protein,omitempty" json:"protein,omitempty"` // g
	Fibre     *float64 `bson:"fibre,omitempty" json:"fibre,omitempty"`     // g
	Water     *float64 `bson:"water,omitempty" json:"water,omitempty"`     // litres
	Steps     *float64 `bson:"steps,omitempty" json:"steps,omitempty"`
	Sleep     *float64 `bson:"sleep,omitempty" json:"sleep,omitempty"` // hours
	Recovery  *float64 `bson:"recovery,omitempty" json:"recovery,omitempty"`
	RestingHR *float64 `bson:"restingHR,omitempty" json:"restingHR,omitempty"` // bpm
}

// WorkoutLog records the session performed that day against a program.
type WorkoutLog struct {
	ProgramID string        `bson:"programId" json:"programId"`
	DayNumber *int          `bson:"dayNumber" json:"dayNumber"` // 1-indexed program day
	Exercises []ExerciseLog `bson:"exercises,omitempty" json:"exercises,omitempty"`
}

// ExerciseLog is one exercise performed within a workout.
type ExerciseLog struct {
	Name string   `bson:"name" json:"name"`
	Sets []SetLog `bson:"sets,omitempty" json:"sets,omitempty"`
}

// SetLog is a single set of an exercise.
type SetLog struct {
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"` // kg
}

// CircumferenceFields lists the ten body-girth measurements stored
// under body.circumferences. Order matters only for display.
var CircumferenceFields = []string{
	"neck",
	"chest",
	"waist",
	"hips",
	"leftBiceps",
	"rightBiceps",
	"leftQuadriceps",
	"rightQuadriceps",
	"leftCalf",
	"rightCalf",
}

// IsCircumferenceField reports whether field is one of the girth
// measurements nested under body.circumferences.
func IsCircumferenceField(field string) bool {
	for _, f := range CircumferenceFields {
		if f == field {
			return true
		}
	}
	return false
}
