package matcalc

import "fmt"

// Standard normal quartiles for the accepted defective levels, expressed in
// percent of tests allowed to fall below the specified strength. Stored with
// their sign so the margin appears as f' - z·k·s.
var quartiles = map[string]float64{
	"20":  -0.842,
	"10":  -1.282,
	"9":   -1.341,
	"5":   -1.645,
	"2.5": -1.960,
	"1":   -2.326,
}

// Quartile returns the normal quartile for a defective level such as "9" or
// "5". The second return reports whether the level is tabulated.
func Quartile(defectiveLevel string) (float64, bool) {
	z, ok := quartiles[defectiveLevel]
	return z, ok
}

// Magnification applied to a standard deviation estimated from fewer than 30
// consecutive tests.
var kFactors = map[int]float64{
	15: 1.16,
	20: 1.08,
	25: 1.03,
	30: 1.00,
}

// KFactor returns the sample-count correction for a known standard
// deviation. Counts not tabulated take no correction.
func KFactor(sampleSize int) float64 {
	if k, ok := kFactors[sampleSize]; ok {
		return k
	}
	return 1.00
}

// Entrapped-air percentages for non-air-entrained concrete by nominal
// maximum size, ACI 211.1 Table 6.3.3.
var entrappedAir = map[string]float64{
	`3-1/2" (90 mm)`:   0.15,
	`3" (75 mm)`:       0.3,
	`2-1/2" (63 mm)`:   0.4,
	`2" (50 mm)`:       0.5,
	`1-1/2" (37,5 mm)`: 1.0,
	`1" (25 mm)`:       1.5,
	`3/4" (19 mm)`:     2.0,
	`1/2" (12,5 mm)`:   2.5,
	`3/8" (9,5 mm)`:    3.0,
}

// EntrappedAirVolume returns the entrapped-air fraction of the unit volume
// for a nominal maximum size designation.
func EntrappedAirVolume(nominalMaxSize string) (float64, error) {
	pct, ok := entrappedAir[nominalMaxSize]
	if !ok {
		return 0, fmt.Errorf("no entrapped-air entry for %q: %w", nominalMaxSize, ErrOutOfRangeLookup)
	}
	return pct / 100, nil
}
