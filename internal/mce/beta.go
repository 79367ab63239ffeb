package mce

import (
	"fmt"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// FillAllSieves expands a partial grading to the full sieve series: every
// sieve above the one holding the largest measured value passes 100%, every
// sieve below the one holding the smallest passes 0%. Sieves between
// measured ones stay absent.
func FillAllSieves(grading map[string]float64) map[string]float64 {
	filled := make(map[string]float64, len(canonicalSieves))
	maxIdx, minIdx := -1, -1
	var maxVal, minVal float64
	for i, sieve := range canonicalSieves {
		v, ok := grading[sieve]
		if !ok {
			continue
		}
		filled[sieve] = v
		if maxIdx < 0 || v > maxVal {
			maxIdx, maxVal = i, v
		}
		if minIdx < 0 || v < minVal {
			minIdx, minVal = i, v
		}
	}
	if maxIdx < 0 {
		return filled
	}
	for i := 0; i < maxIdx; i++ {
		filled[canonicalSieves[i]] = 100
	}
	for i := minIdx + 1; i < len(canonicalSieves); i++ {
		filled[canonicalSieves[i]] = 0
	}
	return filled
}

// BetaBounds is the feasible span of the fine-to-total aggregate relation
// against the recommended combined-grading envelope, in percent. Value is
// the economic pick as a fraction.
type BetaBounds struct {
	Min      float64
	Max      float64
	Mean     float64
	Economic float64
	Value    float64
}

// Beta intersects the combined gradings of both aggregates with the
// recommended envelope for the nominal maximum size. Each usable sieve
// yields a line between the coarse and fine passing values; the envelope
// cut on that line bounds the proportion, and the tightest bounds across
// the sieves give the feasible span.
func Beta(nms string, coarseGrading, fineGrading map[string]float64) (BetaBounds, error) {
	limits, ok := combinedGrading[nms]
	if !ok {
		return BetaBounds{}, fmt.Errorf("no combined-grading envelope for size %q: %w", nms, matcalc.ErrOutOfRangeLookup)
	}

	var mins, maxs []float64
	for _, sieve := range canonicalSieves {
		limit, ok := limits[sieve]
		if !ok {
			continue
		}
		fine, fok := fineGrading[sieve]
		coarse, cok := coarseGrading[sieve]
		if !fok || !cok {
			continue
		}

		if fine == coarse {
			if fine == 0 || fine == 100 {
				continue
			}
			if fine != limit.Max && fine != limit.Min {
				return BetaBounds{}, fmt.Errorf("sieve %q: both gradings pass %.1f%% outside the envelope: %w", sieve, fine, matcalc.ErrInfeasibleMix)
			}
			continue
		}

		slope := 100 / (fine - coarse)
		low := (limit.Min-fine)*slope + 100
		high := (limit.Max-fine)*slope + 100
		if low < 0 {
			low = 0
		}
		if high > 100 {
			high = 100
		}
		mins = append(mins, low)
		maxs = append(maxs, high)
	}

	if len(mins) == 0 {
		return BetaBounds{}, fmt.Errorf("no sieve shared by both gradings and the envelope: %w", matcalc.ErrMissingRequiredField)
	}
	b := BetaBounds{Min: mins[0], Max: maxs[0]}
	for _, v := range mins[1:] {
		if v > b.Min {
			b.Min = v
		}
	}
	for _, v := range maxs[1:] {
		if v < b.Max {
			b.Max = v
		}
	}
	if b.Min > b.Max {
		return BetaBounds{}, fmt.Errorf("minimum proportion %.2f%% above maximum %.2f%%: %w", b.Min, b.Max, matcalc.ErrInfeasibleMix)
	}
	b.Mean = (b.Min + b.Max) / 2
	b.Economic = (b.Mean + b.Min) / 2
	b.Value = b.Economic / 100
	return b, nil
}
