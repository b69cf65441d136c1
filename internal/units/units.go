// Package units converts canonical metric values to imperial display
// values and back. It is pure: no I/O, no state. Display rounding is
// the caller's concern; conversions here keep full float precision so
// the round trip is lossless.
package units

import (
	"fmt"
	"math"

	"mkostiv/fitjournal/internal/domain"
)

// Fixed conversion factors, metric value * factor = imperial value.
const (
	KgPerLbFactor   = 2.20462  // kg -> lb
	CmPerInchFactor = 0.393701 // cm -> in
	LPerFlOzFactor  = 33.814   // L -> fl oz
)

// FeetInches is the compound imperial form of a height. Display renders
// feet and inches separately, so height never converts to one scalar.
type FeetInches struct {
	Feet   int     `json:"feet"`
	Inches float64 `json:"inches"`
}

// factorFor returns the metric->imperial factor for a convertible
// scalar field, or false for fields that have no imperial form.
func factorFor(field string) (float64, bool) {
	switch field {
	case "weight":
		return KgPerLbFactor, true
	case "water":
		return LPerFlOzFactor, true
	case "height":
		return CmPerInchFactor, true
	}
	if domain.IsCircumferenceField(field) {
		return CmPerInchFactor, true
	}
	return 0, false
}

// IsConvertible reports whether field has a metric/imperial pair.
func IsConvertible(field string) bool {
	_, ok := factorFor(field)
	return ok
}

// ToImperial converts a canonical metric value to its scalar imperial
// form (lb, in or fl oz depending on the field). For height prefer
// HeightToFeetInches; as a scalar, height converts to total inches.
func ToImperial(value float64, field string) (float64, error) {
	factor, ok := factorFor(field)
	if !ok {
		return 0, fmt.Errorf("field %q has no imperial conversion", field)
	}
	return value * factor, nil
}

// ToMetric is the exact inverse of ToImperial.
func ToMetric(value float64, field string) (float64, error) {
	factor, ok := factorFor(field)
	if !ok {
		return 0, fmt.Errorf("field %q has no imperial conversion", field)
	}
	return value / factor, nil
}

// HeightToFeetInches converts a height in cm to the compound
// feet-and-inches display form.
func HeightToFeetInches(cm float64) FeetInches {
	totalInches := cm * CmPerInchFactor
	feet := int(math.Floor(totalInches / 12))
	return FeetInches{
		Feet:   feet,
		Inches: totalInches - float64(feet)*12,
	}
}

// HeightFromFeetInches reconstitutes total inches from the compound
// form before dividing back to cm.
func HeightFromFeetInches(h FeetInches) float64 {
	totalInches := float64(h.Feet)*12 + h.Inches
	return totalInches / CmPerInchFactor
}
