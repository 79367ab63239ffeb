// Package mce implements the Venezuelan "Manual del Concreto Estructural"
// (Porrero et al.) proportioning procedure: target strength in kgf/cm²,
// water-cement ratio by Abrams' law with size and type corrections, cement
// content by the triangular relationship, and aggregate split by the beta
// relation over the combined grading.
package mce

import (
	"fmt"
	"math"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// Aggregate type designations of the correction-factor tables.
const (
	CoarseCrushed     = "Triturado"
	CoarseSemiCrushed = "Semitriturado"
	CoarseNaturalGravel = "Grava natural"
	FineNatural       = "Natural"
	FineCrushed       = "Triturada"
)

// TargetStrength is the required average strength in kgf/cm² with its
// statistical backing.
type TargetStrength struct {
	Value   float64
	ZValue  float64
	KFactor float64
	FCr1    float64
	FCr2    float64
	Margin  float64
}

// StdDev describes the strength record backing the margin, one of the two
// branches enabled. QualityControl picks the tabulated margin when the
// deviation is unknown.
type StdDev struct {
	Known          bool
	Value          float64
	SampleSize     int
	DefectiveLevel string
	Unknown        bool
	QualityControl string
}

// RequiredStrength computes the target strength in kgf/cm². With a known
// record of at least 15 tests both candidate expressions are evaluated and
// the larger governs; without a record the quality-control margins apply.
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
		if specStrength <= 350 {
			fcr2 = specStrength - (z-1)*k*sd.Value - 35
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
		margins, ok := strengthMargins[sd.QualityControl]
		if !ok {
			return TargetStrength{}, fmt.Errorf("quality control %q: %w", sd.QualityControl, matcalc.ErrOutOfRangeLookup)
		}
		var margin float64
		switch {
		case specStrength < 210:
			margin = margins[0]
		case specStrength <= 350:
			margin = margins[1]
		default:
			margin = margins[2]
		}
		return TargetStrength{Value: specStrength + margin, Margin: margin}, nil

	default:
		return TargetStrength{}, fmt.Errorf("no standard-deviation branch enabled: %w", matcalc.ErrUnreachableConfiguration)
	}
}

// AbramsConstants are the strength-law constants for a test age:
// strength = M / N^alpha. The zero value selects the tabulated constants.
type AbramsConstants struct {
	M float64
	N float64
}

// Alpha is the water-cement ratio with its correction chain.
type Alpha struct {
	Design    float64
	Factor1   float64
	Factor2   float64
	Corrected float64
	Min       float64
	Final     float64
	Constants AbramsConstants
}

// WaterCementRatio solves Abrams' law for the ratio the target strength
// demands, corrects it for the maximum size and the aggregate types, and
// caps it at the most demanding exposure limit.
func WaterCementRatio(targetStrength float64, age, nms, coarseType, fineType string, exposureClasses []string, override AbramsConstants) (Alpha, error) {
	c := override
	if c == (AbramsConstants{}) {
		var ok bool
		c, ok = abramsConstants[age]
		if !ok {
			return Alpha{}, fmt.Errorf("no strength-law constants for age %q: %w", age, matcalc.ErrOutOfRangeLookup)
		}
	}
	if targetStrength <= 0 {
		return Alpha{}, fmt.Errorf("target strength %.1f: %w", targetStrength, matcalc.ErrMissingRequiredField)
	}

	a := Alpha{Constants: c}
	a.Design = (math.Log10(c.M) - math.Log10(targetStrength)) / math.Log10(c.N)
	a.Factor1 = 1.0
	if f, ok := alphaFactor1[nms]; ok {
		a.Factor1 = f
	}
	a.Factor2 = 1.0
	if f, ok := alphaFactor2[coarseType][fineType]; ok {
		a.Factor2 = f
	}
	a.Corrected = a.Factor1 * a.Factor2 * a.Design

	a.Min = 1.0
	for _, class := range exposureClasses {
		if m, ok := maxAlphaByExposure[class]; ok && m < a.Min {
			a.Min = m
		}
	}
	a.Final = math.Min(a.Corrected, a.Min)
	return a, nil
}

// CementConstants are the triangular-relationship constants:
// content = K · slump^N · alpha^(-M).
type CementConstants struct {
	K float64
	N float64
	M float64
}

// DefaultCementConstants fit the usual Venezuelan component materials.
var DefaultCementConstants = CementConstants{K: 117.2, N: 0.16, M: 1.3}

// Cement is the cement sizing in kgf/m³ with its correction chain.
type Cement struct {
	Design    float64
	Factor1   float64
	Factor2   float64
	Corrected float64
	Min       float64
	Final     float64
}

// CementContent sizes the cement by the triangular relationship on the
// slump in mm, or by the theta relationship when a non-negative theta is
// given, and floors the result at the exposure minimum. The slump branch
// corrects for maximum size and aggregate types; the theta constant already
// embeds the materials, so no correction applies there.
func CementContent(slumpMM, alpha float64, nms, coarseType, fineType string, exposureClasses []string, theta *float64, c CementConstants) (Cement, error) {
	if alpha <= 0 {
		return Cement{}, fmt.Errorf("water-cement ratio %.3f: %w", alpha, matcalc.ErrInvalidDensity)
	}
	var cem Cement
	for _, class := range exposureClasses {
		if m, ok := minCementByExposure[class]; ok && m > cem.Min {
			cem.Min = m
		}
	}

	if theta != nil && *theta >= 0 {
		cem.Design = *theta * math.Pow(alpha, -c.M)
		cem.Final = math.Max(cem.Design, cem.Min)
		return cem, nil
	}

	if nms == "" {
		return Cement{}, fmt.Errorf("nominal maximum size: %w", matcalc.ErrMissingRequiredField)
	}
	slumpCM := 0.1 * slumpMM
	cem.Design = c.K * math.Pow(slumpCM, c.N) * math.Pow(alpha, -c.M)
	cem.Factor1 = cementFactor1[nms]
	cem.Factor2 = cementFactor2[coarseType][fineType]
	cem.Corrected = cem.Factor1 * cem.Factor2 * cem.Design
	cem.Final = math.Max(cem.Corrected, cem.Min)
	return cem, nil
}

// WaterContent returns the mixing water in kgf/m³ the cement and ratio
// imply.
func WaterContent(cementContent, alpha float64) float64 {
	return cementContent * alpha
}

// EntrappedAirVolume estimates the air trapped per unit volume from the
// cement content and the nominal maximum size in mm.
func EntrappedAirVolume(nms string, cementContent float64) (float64, error) {
	mm, err := matcalc.NominalSizeMM(nms)
	if err != nil {
		return 0, err
	}
	return 0.001 * cementContent / mm, nil
}

// FineContent fills the residual absolute volume at the beta proportion and
// returns the fine aggregate content in kgf/m³.
func FineContent(entrappedAir, cementAbsVolume, waterAbsVolume, waterDensity, fineRelativeDensity, coarseRelativeDensity, beta float64) (float64, error) {
	residual := 1 - (entrappedAir + cementAbsVolume + waterAbsVolume)
	if residual <= 0 {
		return 0, fmt.Errorf("residual volume %.4f m³: %w", residual, matcalc.ErrInfeasibleMix)
	}
	if beta <= 0 || beta >= 1 {
		return 0, fmt.Errorf("beta %.3f: %w", beta, matcalc.ErrInfeasibleMix)
	}
	denom := (1 / waterDensity) * (1/fineRelativeDensity + (1/coarseRelativeDensity)*(1/beta-1))
	return residual / denom, nil
}

// CoarseContent returns the coarse aggregate content the beta proportion
// pairs with a fine content.
func CoarseContent(fineContent, beta float64) float64 {
	return fineContent * (1/beta - 1)
}
