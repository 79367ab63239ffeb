// Package aci implements the ACI 211.1 proportioning procedure for normal
// concrete: target strength, water demand, water-cementitious ratio,
// cementitious content, air, and aggregate contents by absolute volume.
package aci

import (
	"fmt"
	"math"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// SCM type designations accepted by the water-demand correction.
const (
	SCMFlyAsh = "Cenizas volantes"
	SCMSlag   = "Cemento de escoria"
)

// TargetStrength is the required average strength with its statistical
// backing, ACI 318 Section 26.4.3 / ACI 214R.
type TargetStrength struct {
	Value   float64
	ZValue  float64
	KFactor float64
	FCr1    float64
	FCr2    float64
	Margin  float64
}

// StdDev describes the standard-deviation information available for the
// producer, one of the two branches enabled.
type StdDev struct {
	Known          bool
	Value          float64
	SampleSize     int
	DefectiveLevel string
	Unknown        bool
}

// RequiredStrength computes the target strength in MPa. With a known record
// of at least 15 tests both ACI 318 expressions are evaluated and the larger
// governs; without a record the tabulated margins apply.
func RequiredStrength(specStrength float64, sd StdDev) (TargetStrength, error) {
	switch {
	case sd.Known && sd.SampleSize >= 15:
		z, ok := matcalc.Quartile(sd.DefectiveLevel)
		if !ok {
			return TargetStrength{}, fmt.Errorf("defective level %q: %w", sd.DefectiveLevel, matcalc.ErrOutOfRangeLookup)
		}
		k := matcalc.KFactor(sd.SampleSize)
		fcr1 := specStrength - z*k*sd.Value
		var fcr2 float64
		if specStrength <= 35 {
			fcr2 = specStrength - (z-1)*k*sd.Value - 3.5
		} else {
			fcr2 = 0.9*specStrength - (z-1)*k*sd.Value
		}
		return TargetStrength{
			Value:   math.Max(fcr1, fcr2),
			ZValue:  z,
			KFactor: k,
			FCr1:    fcr1,
			FCr2:    fcr2,
		}, nil

	case sd.Unknown:
		switch {
		case specStrength < 21:
			return TargetStrength{Value: specStrength + 7.0, Margin: 7.0}, nil
		case specStrength <= 35:
			return TargetStrength{Value: specStrength + 8.3, Margin: 8.3}, nil
		default:
			// Above 35 MPa the table scales the specified strength
			// before the 5.0 MPa margin.
			return TargetStrength{Value: 1.10*specStrength + 5.0, Margin: 5.0}, nil
		}

	default:
		return TargetStrength{}, fmt.Errorf("no standard-deviation branch enabled: %w", matcalc.ErrUnreachableConfiguration)
	}
}

// Water is the mixing-water demand with its corrections, all in kg/m³.
type Water struct {
	Base             float64
	CoarseCorrection float64
	FineCorrection   float64
	SCMCorrection    float64
	Final            float64
}

// WaterDemand looks up the base demand for the slump range and nominal
// maximum size and applies the aggregate-shape and SCM corrections.
// scmType is empty when no SCM is used.
func WaterDemand(slumpRange, nms string, airEntrained bool, coarseType, fineType, scmType string, scmPercent float64) (Water, error) {
	table := waterContent
	if airEntrained {
		table = waterContentAirEntrained
	}
	base, ok := table[slumpRange][nms]
	if !ok {
		return Water{}, fmt.Errorf("no water demand for slump %q and size %q: %w", slumpRange, nms, matcalc.ErrOutOfRangeLookup)
	}

	w := Water{Base: base}
	if coarseType == "Redondeada" {
		w.CoarseCorrection = roundedCoarseFactor * base
	}
	if fineType == "Manufacturada" {
		w.FineCorrection = manufacturedFineFactor * base
	}
	switch scmType {
	case SCMFlyAsh:
		w.SCMCorrection = -math.Floor(scmPercent/10) * flyAshReductionStep * base
	case SCMSlag:
		w.SCMCorrection = -math.Floor(scmPercent/10) * slagReductionStep * base
	}
	w.Final = w.Base + w.CoarseCorrection + w.FineCorrection + w.SCMCorrection
	return w, nil
}

// RatioByStrength returns the water-cementitious ratio the target strength
// demands, from the ACI 211.1 Table 6.3.4(a) curve fits.
func RatioByStrength(targetStrength float64, airEntrained bool) float64 {
	if airEntrained {
		return -0.368*math.Log(targetStrength) + 1.7
	}
	return 1.1318 * math.Exp(-0.025*targetStrength)
}

// RatioByDurability returns the most demanding maximum ratio among the
// exposure classes, 1.0 when none imposes a limit.
func RatioByDurability(exposureClasses []string) float64 {
	limit := 1.0
	for _, class := range exposureClasses {
		if m, ok := maxRatioByExposure[class]; ok && m < limit {
			limit = m
		}
	}
	return limit
}

// Cementitious is the binder sizing in kg/m³.
type Cementitious struct {
	Base   float64
	Min    float64
	Total  float64
	Cement float64
	SCM    float64
}

// CementitiousContent sizes the binder from the water demand and ratio,
// clamps it to the minimum for the nominal maximum size, and splits off the
// SCM share.
func CementitiousContent(waterContent, wcm float64, nms string, scmChecked bool, scmPercent float64) (Cementitious, error) {
	if wcm <= 0 {
		return Cementitious{}, fmt.Errorf("water-cementitious ratio %.3f: %w", wcm, matcalc.ErrInvalidDensity)
	}
	c := Cementitious{Base: waterContent / wcm}
	c.Min = minCementitiousContent[nms]
	c.Total = math.Max(c.Base, c.Min)
	if scmChecked {
		c.SCM = c.Total * scmPercent / 100
	}
	c.Cement = c.Total - c.SCM
	return c, nil
}

// EntrainedAirVolume returns the target air fraction of the unit volume for
// the first freeze exposure class that requires entrainment.
func EntrainedAirVolume(nms string, exposureClasses []string) (float64, error) {
	for _, class := range exposureClasses {
		byNMS, ok := entrainedAirPercent[class]
		if !ok {
			continue
		}
		pct, ok := byNMS[nms]
		if !ok {
			return 0, fmt.Errorf("no air requirement for size %q in class %q: %w", nms, class, matcalc.ErrOutOfRangeLookup)
		}
		return pct / 100, nil
	}
	return 0, fmt.Errorf("no exposure class requires entrained air: %w", matcalc.ErrOutOfRangeLookup)
}

// CoarseContent returns the dry-rodded bulk volume per unit volume of
// concrete and the oven-dry and SSD contents it yields.
func CoarseContent(nms string, finenessModulus, compactedBulkDensity, absorption float64) (bulkVolume, ovenDry, ssd float64, err error) {
	coeff, ok := bulkVolumeCoefficients[nms]
	if !ok {
		return 0, 0, 0, fmt.Errorf("no bulk-volume line for size %q: %w", nms, matcalc.ErrOutOfRangeLookup)
	}
	if finenessModulus <= 0 {
		return 0, 0, 0, fmt.Errorf("fineness modulus %.2f: %w", finenessModulus, matcalc.ErrMissingRequiredField)
	}
	if compactedBulkDensity <= 0 {
		return 0, 0, 0, fmt.Errorf("compacted bulk density %.1f: %w", compactedBulkDensity, matcalc.ErrInvalidDensity)
	}
	bulkVolume = coeff.A*finenessModulus + coeff.B
	ovenDry = bulkVolume * compactedBulkDensity
	ssd = ovenDry * (1 + absorption/100)
	return bulkVolume, ovenDry, ssd, nil
}

// FineContent fills the residual absolute volume with fine aggregate and
// returns that volume in m³ together with the SSD content in kg/m³.
func FineContent(waterVolume, airVolume, cementVolume, scmVolume, coarseVolume, fineRelativeDensity, waterDensity float64) (residual, ssd float64, err error) {
	residual = 1 - (waterVolume + airVolume + cementVolume + scmVolume + coarseVolume)
	if residual <= 0 {
		return 0, 0, fmt.Errorf("residual volume %.4f m³: %w", residual, matcalc.ErrInfeasibleMix)
	}
	return residual, residual * fineRelativeDensity * waterDensity, nil
}
