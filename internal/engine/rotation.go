package engine

import (
	"sort"

	"mkostiv/fitjournal/internal/domain"
)

// NextDay suggests which 1-indexed day of the program to do next. The
// pointer is never persisted: it is always recomputed from history, so
// a user override on today's entry does not disturb future
// suggestions. Journals from today onward are ignored — only sessions
// strictly before today advance the rotation.
func NextDay(program *domain.Program, journals []domain.Journal, today string) int {
	if program == nil {
		return 1
	}
	dayCount := program.DayCount()
	if dayCount == 0 {
		return 1
	}

	sorted := make([]domain.Journal, len(journals))
	copy(sorted, journals)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Date > sorted[b].Date })

	for i := range sorted {
		j := &sorted[i]
		if j.Date >= today {
			continue
		}
		w := j.Workout
		if w == nil || w.ProgramID != program.ID || w.DayNumber == nil {
			continue
		}
		return (*w.DayNumber % dayCount) + 1
	}
	return 1
}
