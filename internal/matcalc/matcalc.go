// Package matcalc holds the material calculus shared by the three
// proportioning methods: volume conversions, moisture corrections, admixture
// dosing and the statistical factors behind the target-strength margins.
package matcalc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AbsoluteVolume returns the volume in m³ displaced by a material content in
// kg/m³ given its relative density and the water density in kg/m³.
func AbsoluteVolume(content, relativeDensity, waterDensity float64) (float64, error) {
	if relativeDensity <= 0 {
		return 0, fmt.Errorf("relative density %.3f: %w", relativeDensity, ErrInvalidDensity)
	}
	if waterDensity <= 0 {
		return 0, fmt.Errorf("water density %.1f: %w", waterDensity, ErrInvalidDensity)
	}
	return content / (relativeDensity * waterDensity), nil
}

// ApparentVolume returns the batching volume in L occupied by a content in
// kg/m³ at its loose bulk density in kg/m³.
func ApparentVolume(content, looseBulkDensity float64) (float64, error) {
	if looseBulkDensity <= 0 {
		return 0, fmt.Errorf("loose bulk density %.1f: %w", looseBulkDensity, ErrInvalidDensity)
	}
	return content / (looseBulkDensity / 1000), nil
}

// WetContent converts a saturated-surface-dry aggregate content to the as-is
// moisture condition of the stockpile.
func WetContent(ssdContent, moistureContent, absorptionContent float64) (float64, error) {
	denom := 100 + absorptionContent
	if denom == 0 {
		return 0, fmt.Errorf("absorption content %.2f%%: %w", absorptionContent, ErrInvalidDensity)
	}
	return ssdContent * (100 + moistureContent) / denom, nil
}

// WaterCorrection adjusts the design water for the free moisture the
// aggregates bring into or take from the batch.
func WaterCorrection(waterContent, fineSSD, fineWet, coarseSSD, coarseWet float64) float64 {
	return waterContent + (fineSSD - fineWet) + (coarseSSD - coarseWet)
}

// AdmixtureContent returns the admixture mass in kg/m³ for a dosage given in
// percent by weight of cementitious material.
func AdmixtureContent(cementitiousContent, dosage float64) (float64, error) {
	if dosage <= 0 {
		return 0, fmt.Errorf("admixture dosage %.2f%%: %w", dosage, ErrMissingRequiredField)
	}
	return cementitiousContent * dosage / 100, nil
}

// AdmixtureVolume returns the volume in m³ of an admixture content in kg/m³.
func AdmixtureVolume(content, relativeDensity, waterDensity float64) (float64, error) {
	return AbsoluteVolume(content, relativeDensity, waterDensity)
}

// The figure between parentheses in a sieve designation, e.g. `1-1/2" (37,5 mm)`.
var nominalSizeRe = regexp.MustCompile(`\(.*?(\d+(?:[,.]\d+)?)`)

// NominalSizeMM extracts the opening in millimetres from a sieve or nominal
// maximum size designation. Decimal commas are accepted.
func NominalSizeMM(designation string) (float64, error) {
	m := nominalSizeRe.FindStringSubmatch(designation)
	if m == nil {
		return 0, fmt.Errorf("no millimetre figure in %q: %w", designation, ErrOutOfRangeLookup)
	}
	return strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
}
