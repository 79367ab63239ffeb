// Package validation derives the categorical inputs the proportioning
// pipelines consume: completed gradings, the nominal maximum size, grading
// classification against the normative envelopes, fineness modulus, and the
// regulatory floors on strength, entrained air and SCM content.
package validation

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// Default acceptance thresholds: a sieve passes the nominal-maximum-size
// test at 95% passing, and a grading matches a category when 95% of its
// envelope sieves fall inside the band.
const (
	NMSThreshold      = 95.0
	ClassifyThreshold = 0.95
)

// Service runs the validation checks against a logger.
type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	return &Service{log: log}
}

// Sieves returns the fine and coarse sieve series of a method.
func Sieves(method string) (fine, coarse []string, ok bool) {
	s, ok := sieves[method]
	if !ok {
		return nil, nil, false
	}
	return s.Fine, s.Coarse, true
}

// Grading holds the three complementary renditions of one sieve analysis.
// A sieve absent from a map was not measured and could not be derived.
type Grading struct {
	Passing            map[string]float64
	Retained           map[string]float64
	CumulativeRetained map[string]float64
}

// CompleteFromPassing derives the retained percentages from the cumulative
// passing values, walking the sieve series from the largest opening down.
// A gap in the measurements breaks the retained chain at that sieve.
func CompleteFromPassing(order []string, passing map[string]float64) Grading {
	g := Grading{
		Passing:            passing,
		Retained:           make(map[string]float64, len(passing)),
		CumulativeRetained: make(map[string]float64, len(passing)),
	}
	for _, sieve := range order {
		if p, ok := passing[sieve]; ok {
			g.CumulativeRetained[sieve] = 100 - p
		}
	}
	first := true
	for i, sieve := range order {
		cur, ok := g.CumulativeRetained[sieve]
		if !ok {
			continue
		}
		if first {
			g.Retained[sieve] = cur
			first = false
			continue
		}
		if prev, ok := g.CumulativeRetained[order[i-1]]; ok {
			g.Retained[sieve] = cur - prev
		}
	}
	return g
}

// CompleteFromRetained derives the passing percentages by accumulating the
// individual retained fractions down the sieve series.
func CompleteFromRetained(order []string, retained map[string]float64) Grading {
	g := Grading{
		Passing:            make(map[string]float64, len(retained)),
		Retained:           retained,
		CumulativeRetained: make(map[string]float64, len(retained)),
	}
	var cum float64
	for _, sieve := range order {
		if r, ok := retained[sieve]; ok {
			cum += r
			g.CumulativeRetained[sieve] = cum
			g.Passing[sieve] = 100 - cum
		}
	}
	return g
}

// NominalMaximumSize resolves the nominal maximum size: a category with a
// pinned size wins outright, otherwise it is the smallest sieve the
// threshold percentage still passes.
func (s *Service) NominalMaximumSize(method, coarseCategory string, order []string, grading map[string]float64, threshold float64) (string, bool) {
	if method != "" && coarseCategory != "" {
		if nms, ok := nmsByCategory[method][coarseCategory]; ok {
			s.log.Debug("nominal maximum size pinned by category", "category", coarseCategory, "nms", nms)
			return nms, true
		}
	}
	smallest := ""
	for _, sieve := range order {
		if p, ok := grading[sieve]; ok && p >= threshold {
			smallest = sieve
		}
	}
	if smallest == "" {
		return "", false
	}
	return smallest, true
}

// ClassifyAggregate scores a sieve analysis against every category envelope
// and returns the best category, or "" when none reaches the threshold. A
// sieve the envelope names but the analysis misses counts as a failure.
func ClassifyAggregate(measured map[string]float64, categories map[string]map[string]rangeLimit, threshold float64) (string, map[string]float64) {
	scores := make(map[string]float64, len(categories))
	for category, reqs := range categories {
		total, matches := 0, 0
		for sieve, limit := range reqs {
			total++
			m, ok := measured[sieve]
			if !ok {
				continue
			}
			if m <= limit.Max && m >= limit.Min {
				matches++
			}
		}
		if total > 0 {
			scores[category] = float64(matches) / float64(total)
		}
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	best := ""
	for _, name := range names {
		if best == "" || scores[name] > scores[best] {
			best = name
		}
	}
	if best == "" || scores[best] < threshold {
		return "", scores
	}
	return best, scores
}

// Classification is the outcome of classifying both gradings of a design.
// An empty category means no envelope accepted the analysis.
type Classification struct {
	CoarseCategory string
	FineCategory   string
	CoarseScores   map[string]float64
	FineScores     map[string]float64
}

// ClassifyGrading classifies the coarse and fine sieve analyses against the
// method's envelopes.
func (s *Service) ClassifyGrading(method string, coarse, fine map[string]float64) (Classification, error) {
	coarseCats, cok := coarseRanges[method]
	fineCats, fok := fineRanges[method]
	if !cok || !fok {
		return Classification{}, fmt.Errorf("no grading envelopes for method %q: %w", method, matcalc.ErrOutOfRangeLookup)
	}
	var c Classification
	c.CoarseCategory, c.CoarseScores = ClassifyAggregate(coarse, coarseCats, ClassifyThreshold)
	c.FineCategory, c.FineScores = ClassifyAggregate(fine, fineCats, ClassifyThreshold)
	s.log.Debug("grading classified",
		"method", method, "coarse", c.CoarseCategory, "fine", c.FineCategory)
	return c, nil
}

// EnvelopeBand exposes the passing band of one grading category, for
// drawing it behind a measured curve.
func EnvelopeBand(method, category string, coarse bool) (max, min map[string]float64, ok bool) {
	ranges := fineRanges
	if coarse {
		ranges = coarseRanges
	}
	band, ok := ranges[method][category]
	if !ok {
		return nil, nil, false
	}
	max = make(map[string]float64, len(band))
	min = make(map[string]float64, len(band))
	for sieve, limit := range band {
		max[sieve] = limit.Max
		min[sieve] = limit.Min
	}
	return max, min, true
}

// FinenessModulus sums the cumulative retained percentages over the
// specified sieve series and divides by 100. A sieve without data counts
// as zero.
func FinenessModulus(order []string, cumulativeRetained map[string]float64) float64 {
	var sum float64
	for _, sieve := range order {
		sum += cumulativeRetained[sieve]
	}
	return sum / 100
}

// RequiredFinenessModulus computes the fineness modulus over the method's
// sieve series and checks it against the method's limits when it has any.
// limited reports whether limits exist; ok is meaningful only then.
func (s *Service) RequiredFinenessModulus(method string, cumulativeRetained map[string]float64) (fm float64, ok, limited bool) {
	fm = FinenessModulus(finenessModulusSieves[method], cumulativeRetained)
	fm = math.Round(fm*100) / 100

	limits, limited := finenessModulusLimits[method]
	if !limited {
		s.log.Debug("no fineness modulus limits", "method", method)
		return fm, false, false
	}
	if fm < limits.Min || fm > limits.Max {
		s.log.Warn("fineness modulus out of range",
			"calculated", fm, "min", limits.Min, "max", limits.Max)
		return fm, false, true
	}
	return fm, true, true
}

// SpecStrengthBounds returns the specified-strength range a method accepts
// in the given unit system.
func SpecStrengthBounds(method, unitSystem string) (min, max float64, ok bool) {
	min, mok := minSpecStrength[unitSystem][method]
	max, xok := maxSpecStrength[unitSystem][method]
	return min, max, mok && xok
}

// MinimumSpecStrength returns the most demanding exposure class among those
// given and the strength it requires.
func MinimumSpecStrength(method, unitSystem string, exposureClasses []string) (class string, value float64, ok bool) {
	ranges := minimumSpecStrength[method][unitSystem]
	for _, ec := range exposureClasses {
		v, found := ranges[ec]
		if !found {
			continue
		}
		if !ok || v > value {
			class, value, ok = ec, v, true
		}
	}
	return class, value, ok
}

// CheckSpecStrength verifies the specified strength against the exposure
// minimum. found reports whether any class imposed a requirement.
func (s *Service) CheckSpecStrength(method, unitSystem string, specStrength float64, exposureClasses []string) (ok bool, required float64, class string, found bool) {
	class, required, found = MinimumSpecStrength(method, unitSystem, exposureClasses)
	if !found {
		s.log.Debug("no exposure class imposes a strength floor", "method", method)
		return true, 0, "", false
	}
	if specStrength < required {
		s.log.Warn("specified strength below the exposure minimum",
			"spec", specStrength, "required", required, "class", class)
		return false, required, class, true
	}
	return true, required, class, true
}

// MaxSCMContent returns the highest SCM allowance among the exposure
// classes for the given material.
func MaxSCMContent(method string, exposureClasses []string, scmType string) (class string, pct float64, ok bool) {
	byClass := maximumSCM[method]
	for _, ec := range exposureClasses {
		v, found := byClass[ec][scmType]
		if !found {
			continue
		}
		if !ok || v > pct {
			class, pct, ok = ec, v, true
		}
	}
	return class, pct, ok
}

// CheckSCMContent verifies an SCM dosage against the exposure ceiling.
func (s *Service) CheckSCMContent(method string, exposureClasses []string, scmType string, scmContent float64) (ok bool, maxPct float64, class string, found bool) {
	class, maxPct, found = MaxSCMContent(method, exposureClasses, scmType)
	if !found {
		s.log.Debug("no SCM ceiling for the given exposure classes", "method", method, "scm", scmType)
		return true, 0, "", false
	}
	if scmContent > maxPct {
		s.log.Warn("SCM content above the exposure ceiling",
			"content", scmContent, "max", maxPct, "class", class)
		return false, maxPct, class, true
	}
	return true, maxPct, class, true
}

// RequiredEntrainedAir returns the strictest entrained-air demand among the
// exposure classes, resolved against the nominal maximum size where the
// method's table depends on it.
func RequiredEntrainedAir(method string, exposureClasses []string, nms string) (pct float64, class string, ok bool) {
	byClass := entrainedAir[method]
	for _, ec := range exposureClasses {
		req, found := byClass[ec]
		if !found {
			continue
		}
		v := req.Flat
		if req.ByNMS != nil {
			v, found = req.ByNMS[nms]
			if !found {
				continue
			}
		}
		if !ok || v > pct {
			pct, class, ok = v, ec, true
		}
	}
	return pct, class, ok
}

// CheckEntrainedAir verifies an entrained-air content against the exposure
// minimum.
func (s *Service) CheckEntrainedAir(method string, exposureClasses []string, nms string, entrainedAirPct float64) (ok bool, required float64, class string, found bool) {
	required, class, found = RequiredEntrainedAir(method, exposureClasses, nms)
	if !found {
		s.log.Debug("no entrained-air requirement for the given exposure classes", "method", method)
		return true, 0, "", false
	}
	if entrainedAirPct < required {
		s.log.Warn("entrained air below the exposure minimum",
			"content", entrainedAirPct, "required", required, "class", class)
		return false, required, class, true
	}
	return true, required, class, true
}
