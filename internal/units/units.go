// Package units converts design inputs into the native unit system of each
// proportioning method: the ACI and DoE pipelines work in MPa, the MCE
// pipeline in kgf/cm².
package units

import "log/slog"

const (
	// MKS is the technical system (kgf/cm² for stress).
	MKS = "MKS"
	// SI is the international system (MPa for stress).
	SI = "SI"
)

// Factor applied to a stress expressed in the named system to reach the
// other one: kgf/cm² × 0.0980665 = MPa, MPa × 10.1972 = kgf/cm².
var conversionFactors = map[string]map[string]float64{
	MKS: {"stress": 0.0980665},
	SI:  {"stress": 10.1972},
}

// Convert scales value by the factor registered for the source unit system
// and quantity. A missing factor is the one condition recovered locally: it
// is logged and reported through ok=false, and the caller decides how to
// degrade.
func Convert(value float64, system, quantity string, log *slog.Logger) (float64, bool) {
	factor, ok := conversionFactors[system][quantity]
	if !ok {
		log.Warn("no conversion factor registered",
			"system", system,
			"quantity", quantity)
		return 0, false
	}
	return value * factor, true
}
