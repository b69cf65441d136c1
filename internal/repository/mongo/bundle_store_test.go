package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mkostiv/fitjournal/internal/domain"
)

func TestProfileDocLeavesInputUntouched(t *testing.T) {
	height := 170.0
	input := &domain.Profile{
		ID:             "stale-key",
		Name:           "Marta",
		HeightCm:       &height,
		UnitPreference: domain.UnitsMetric,
	}

	doc := profileDoc(input)

	assert.Equal(t, domain.ProfileKey, doc.ID)
	assert.Equal(t, "Marta", doc.Name)
	// The imported bundle is never mutated.
	assert.Equal(t, "stale-key", input.ID)
}
