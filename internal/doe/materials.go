// Package doe implements the DoE/BRE "Design of Normal Concrete Mixes"
// procedure: target strength from the producer's record, free-water ratio
// from the strength chart, water demand, binder sizing against EN 206
// durability floors, and aggregate split by wet density.
package doe

import (
	"fmt"
	"math"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// Aggregate type designations of the BRE tables.
const (
	AggregateCrushed   = "Triturada"
	AggregateUncrushed = "No triturada"
)

// TargetStrength is the mean strength the mix must reach, in MPa.
type TargetStrength struct {
	Value      float64
	ZValue     float64
	StdDevUsed float64
	Margin     float64
}

// StdDev describes the strength record backing the margin, one of the two
// branches enabled.
type StdDev struct {
	Known          bool
	Value          float64
	SampleSize     int
	DefectiveLevel string
	Unknown        bool
}

// RequiredStrength computes the target mean strength. A known record uses
// the defective-level quantile over the recorded deviation, floored by the
// BRE minimum curves; without a record the user-defined margin applies.
// Entrained air knocks strength down, so the target is scaled up by 5.5%
// per percent of air.
func RequiredStrength(specStrength float64, sd StdDev, userMargin, airPercent float64) (TargetStrength, error) {
	var ts TargetStrength
	switch {
	case sd.Unknown:
		ts = TargetStrength{Value: specStrength + userMargin, Margin: userMargin}

	case sd.Known:
		z, ok := matcalc.Quartile(sd.DefectiveLevel)
		if !ok {
			return TargetStrength{}, fmt.Errorf("defective level %q: %w", sd.DefectiveLevel, matcalc.ErrOutOfRangeLookup)
		}
		s := sd.Value
		if sd.SampleSize < 20 {
			if specStrength <= 20 {
				s = math.Max(s, 0.4*specStrength)
			} else {
				s = math.Max(s, 8)
			}
		} else {
			if specStrength <= 20 {
				s = math.Max(s, 0.2*specStrength)
			} else {
				s = math.Max(s, 4)
			}
		}
		ts = TargetStrength{
			Value:      specStrength - z*s,
			ZValue:     z,
			StdDevUsed: s,
			Margin:     -z * s,
		}

	default:
		return TargetStrength{}, fmt.Errorf("no margin information available: %w", matcalc.ErrUnreachableConfiguration)
	}

	if airPercent > 0 {
		ts.Value /= 1 - 0.055*airPercent
	}
	return ts, nil
}

// RequiredAir returns the entrained-air fraction of the unit volume the
// exposure classes demand, zero when none of them is a freeze-thaw class.
func RequiredAir(exposureClasses []string) float64 {
	pct := 0.0
	for _, class := range exposureClasses {
		if p, ok := entrainedAirPercent[class]; ok && p > pct {
			pct = p
		}
	}
	return pct / 100
}

// StartingStrength averages the chart anchor strengths of the coarse and
// fine aggregate types for the cement class and test age.
func StartingStrength(cementClass, coarseType, fineType, age string) (float64, error) {
	key := cementClass
	if len(key) > 4 {
		key = key[:4]
	}
	byType, ok := startingStrength[key]
	if !ok {
		return 0, fmt.Errorf("no starting strength for cement class %q: %w", cementClass, matcalc.ErrOutOfRangeLookup)
	}
	coarse, ok := byType[coarseType][age]
	if !ok {
		return 0, fmt.Errorf("no starting strength for %q at %q: %w", coarseType, age, matcalc.ErrOutOfRangeLookup)
	}
	fine, ok := byType[fineType][age]
	if !ok {
		return 0, fmt.Errorf("no starting strength for %q at %q: %w", fineType, age, matcalc.ErrOutOfRangeLookup)
	}
	return (coarse + fine) / 2, nil
}

// RatioByStrength solves the strength chart for the free-water ratio.
func RatioByStrength(startingStrength, targetStrength float64) (float64, error) {
	return ratioFromCurves(startingStrength, targetStrength)
}

// RatioByDurability returns the most demanding maximum free-water ratio
// among the exposure classes. With an SCM in the mix the durability check is
// deferred to the review of the sized binder, so no limit applies here.
func RatioByDurability(exposureClasses []string, scmChecked bool) float64 {
	if scmChecked {
		return 1.0
	}
	limit := 1.0
	for _, class := range exposureClasses {
		if m, ok := maxRatioByExposure[class]; ok && m < limit {
			limit = m
		}
	}
	return limit
}

// MaxRatioByExposure returns the durability ceiling on the free-water ratio
// for the review of an SCM binder.
func MaxRatioByExposure(exposureClasses []string) float64 {
	limit := 1.0
	for _, class := range exposureClasses {
		if m, ok := maxRatioByExposure[class]; ok && m < limit {
			limit = m
		}
	}
	return limit
}

// WaterSpec gathers the inputs of the free-water demand lookup.
type WaterSpec struct {
	SlumpRange       string
	NMS              string
	CoarseType       string
	FineType         string
	AirEntrained     bool
	SCMChecked       bool
	SCMPercent       float64
	WRAReducesWater  bool
	WRAEffectiveness float64
}

// Water is the free-water demand with its corrections, all in kg/m³.
type Water struct {
	BaseCoarse      float64
	BaseFine        float64
	Base            float64
	SCMCorrection   float64
	WRACorrection   float64
	Final           float64
	SCMBelowMinimum bool
}

// WaterDemand looks up the two-thirds fine, one-third coarse weighted
// demand of BRE Table 3 and applies the SCM and water-reducer corrections.
// Air entrainment earns the next lower slump range.
func WaterDemand(spec WaterSpec) (Water, error) {
	idx := -1
	for i, r := range slumpRanges {
		if r == spec.SlumpRange {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Water{}, fmt.Errorf("unknown slump range %q: %w", spec.SlumpRange, matcalc.ErrOutOfRangeLookup)
	}
	lookupRange := spec.SlumpRange
	if spec.AirEntrained && idx > 0 {
		lookupRange = slumpRanges[idx-1]
	}

	byType, ok := waterContent[spec.NMS]
	if !ok {
		return Water{}, fmt.Errorf("no water demand for size %q: %w", spec.NMS, matcalc.ErrOutOfRangeLookup)
	}
	coarse, ok := byType[spec.CoarseType][lookupRange]
	if !ok {
		return Water{}, fmt.Errorf("no water demand for aggregate type %q: %w", spec.CoarseType, matcalc.ErrOutOfRangeLookup)
	}
	fine, ok := byType[spec.FineType][lookupRange]
	if !ok {
		return Water{}, fmt.Errorf("no water demand for aggregate type %q: %w", spec.FineType, matcalc.ErrOutOfRangeLookup)
	}

	w := Water{BaseCoarse: coarse, BaseFine: fine}
	if coarse == fine {
		w.Base = fine
	} else {
		w.Base = 2.0/3.0*fine + 1.0/3.0*coarse
	}

	if spec.SCMChecked {
		band := ""
		switch p := spec.SCMPercent; {
		case p >= 50:
			band = "50"
		case p >= 40:
			band = "40-50"
		case p >= 30:
			band = "30-40"
		case p >= 20:
			band = "20-30"
		case p >= 10:
			band = "10-20"
		default:
			w.SCMBelowMinimum = true
		}
		if band != "" {
			w.SCMCorrection = -scmWaterReduction[band][lookupRange]
		}
	}
	if spec.WRAReducesWater {
		w.WRACorrection = -spec.WRAEffectiveness / 100 * w.Base
	}
	w.Final = w.Base + w.SCMCorrection + w.WRACorrection
	return w, nil
}

// Cementitious is the binder sizing in kg/m³.
type Cementitious struct {
	Base    float64
	Min     float64
	Total   float64
	Cement  float64
	SCM     float64
	Clamped bool
}

// CementitiousContent sizes the binder from the free water and ratio and
// clamps it to the EN 206 minimum of the exposure classes. An SCM binder
// counts its addition at a 0.70 efficiency toward the ratio, and a clamp
// scales cement and addition keeping the replacement percentage.
func CementitiousContent(waterContent, wcm float64, exposureClasses []string, scmChecked bool, scmPercent float64) (Cementitious, error) {
	if wcm <= 0 {
		return Cementitious{}, fmt.Errorf("free-water ratio %.3f: %w", wcm, matcalc.ErrInvalidDensity)
	}
	var c Cementitious
	for _, class := range exposureClasses {
		if m, ok := minCementitiousByExposure[class]; ok && m > c.Min {
			c.Min = m
		}
	}

	if !scmChecked {
		c.Base = waterContent / wcm
		c.Total = math.Max(c.Base, c.Min)
		c.Cement = c.Total
		c.Clamped = c.Total > c.Base
		return c, nil
	}

	p := scmPercent
	c.Cement = (100 - p) * waterContent / ((100 - 0.70*p) * wcm)
	c.SCM = p * c.Cement / (100 - p)
	c.Base = c.Cement + c.SCM
	c.Total = math.Max(c.Base, c.Min)
	if c.Total != c.Base {
		// Resize at the ratio the floor imposes, keeping the
		// replacement percentage.
		floored := waterContent / c.Total
		c.Cement = (100 - p) * waterContent / ((100 - 0.70*p) * floored)
		c.SCM = p * c.Cement / (100 - p)
		c.Clamped = true
	}
	return c, nil
}

// WetDensity estimates the fresh density in kg/m³ from the free water and
// the combined relative density of the aggregates, with the air-entrainment
// deduction of 10 kg/m³ per percent of air per unit of relative density.
func WetDensity(freeWater, combinedRelativeDensity float64, airFraction float64) float64 {
	first := densityLines[0]
	last := densityLines[len(densityLines)-1]

	var density float64
	switch {
	case combinedRelativeDensity <= first.RelativeDensity:
		density = first.Intercept - freeWater
	case combinedRelativeDensity >= last.RelativeDensity:
		density = last.Intercept - freeWater
	default:
		for i := 0; i < len(densityLines)-1; i++ {
			lo, hi := densityLines[i], densityLines[i+1]
			if combinedRelativeDensity < lo.RelativeDensity || combinedRelativeDensity > hi.RelativeDensity {
				continue
			}
			dLo := lo.Intercept - freeWater
			dHi := hi.Intercept - freeWater
			t := (combinedRelativeDensity - lo.RelativeDensity) / (hi.RelativeDensity - lo.RelativeDensity)
			density = dLo + t*(dHi-dLo)
			break
		}
	}

	if airFraction > 0 {
		density -= 10 * airFraction * 100 * combinedRelativeDensity
	}
	return density
}

// TotalAggregate is the mass of aggregate left once binder and water are
// taken out of the wet density.
func TotalAggregate(wetDensity, cement, scm, freeWater float64) float64 {
	return wetDensity - cement - scm - freeWater
}

// FineProportion reads the BRE Figure 6 chart: the percentage of the total
// aggregate that should be fine, by maximum size, slump range, free-water
// ratio and the percentage of fines passing the 600 µm sieve.
func FineProportion(nms, slumpRange string, passing600, wcm float64) (float64, error) {
	lines, ok := fineProportion[nms][slumpRange]
	if !ok {
		return 0, fmt.Errorf("no fine-proportion chart for size %q and slump %q: %w", nms, slumpRange, matcalc.ErrOutOfRangeLookup)
	}
	value := func(l proportionLine) float64 { return l.Intercept + l.Slope*wcm }

	if passing600 >= lines[0].Passing {
		return value(lines[0]), nil
	}
	last := lines[len(lines)-1]
	if passing600 <= last.Passing {
		return value(last), nil
	}
	for i := 0; i < len(lines)-1; i++ {
		hi, lo := lines[i], lines[i+1]
		if passing600 > hi.Passing || passing600 < lo.Passing {
			continue
		}
		t := (hi.Passing - passing600) / (hi.Passing - lo.Passing)
		return value(hi) + t*(value(lo)-value(hi)), nil
	}
	return 0, fmt.Errorf("fines passing %.1f%%: %w", passing600, matcalc.ErrOutOfRangeLookup)
}
