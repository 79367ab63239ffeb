package doe

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// The strength-versus-ratio chart of BRE "Design of Normal Concrete Mixes"
// Figure 4 as a family of fitted cubics, from the lowest curve to the
// highest. Each row holds c0..c3 of
//
//	S(w) = c0 + c1·w + c2·w² + c3·w³
//
// over the free-water ratio w. At a ratio of 0.5 the curves anchor 15 MPa
// to 85 MPa in 5 MPa steps, the axis the starting strength is located on.
var wcmCurves = [...][4]float64{
	{105.2008, -329.8464, 372.9447, -148.1111},
	{129.6059, -387.7243, 413.6817, -153.2672},
	{135.3626, -390.6361, 423.812, -167.9078},
	{154.2559, -424.7086, 431.0217, -156.8002},
	{154.8444, -418.9438, 451.8114, -186.6459},
	{150.1313, -355.7761, 331.2894, -120.524},
	{141.3623, -252.2054, 114.6422, 9.877},
	{158.8243, -335.1414, 285.0786, -98.7298},
	{184.2437, -464.3615, 536.5956, -250.4737},
	{132.8923, -115.6359, -131.9733, 143.5999},
	{147.9277, -223.9979, 134.2806, -36.0538},
	{164.2652, -268.0084, 185.0892, -52.2665},
	{157.1233, -224.956, 139.7288, -36.6202},
	{167.5982, -239.9531, 149.044, -39.0616},
	{178.0731, -254.9501, 158.3593, -41.5029},
}

// curveValue evaluates one cubic of the chart at the given ratio.
func curveValue(c [4]float64, ratio float64) float64 {
	return c[0] + ratio*(c[1]+ratio*(c[2]+ratio*c[3]))
}

// ratioFromCurves solves the chart for the free-water ratio that delivers
// the target strength. The starting strength locates the bracketing curves
// at a ratio of 0.5, the bracket is interpolated coefficient-wise, and the
// resulting cubic is solved exactly for the real root inside the chart's
// 0.30 to 0.90 span.
func ratioFromCurves(startingStrength, targetStrength float64) (float64, error) {
	vals := make([]float64, len(wcmCurves))
	for i, c := range wcmCurves {
		vals[i] = curveValue(c, 0.5)
	}
	last := len(vals) - 1
	if startingStrength < vals[0] || startingStrength > vals[last] {
		return 0, fmt.Errorf("starting strength %.1f MPa outside the chart: %w", startingStrength, matcalc.ErrOutOfRangeLookup)
	}

	idx := 0
	for i := 0; i < last; i++ {
		if vals[i] <= startingStrength && startingStrength <= vals[i+1] {
			idx = i
			break
		}
	}
	alpha := (startingStrength - vals[idx]) / (vals[idx+1] - vals[idx])

	var c [4]float64
	for j := range c {
		c[j] = wcmCurves[idx][j] + alpha*(wcmCurves[idx+1][j]-wcmCurves[idx][j])
	}
	c[0] -= targetStrength

	for _, root := range cubicRoots(c[3], c[2], c[1], c[0]) {
		if math.Abs(imag(root)) > 1e-7 {
			continue
		}
		w := real(root)
		if w >= 0.30 && w <= 0.90 {
			return w, nil
		}
	}
	return 0, fmt.Errorf("no ratio between 0.30 and 0.90 reaches %.1f MPa: %w", targetStrength, matcalc.ErrInfeasibleMix)
}

// cubicRoots returns the three roots of a·x³ + b·x² + c·x + d = 0 by
// Cardano's method.
func cubicRoots(a, b, c, d float64) [3]complex128 {
	p := complex((3*a*c-b*b)/(3*a*a), 0)
	q := complex((2*b*b*b-9*a*b*c+27*a*a*d)/(27*a*a*a), 0)

	u := cmplx.Sqrt(q*q/4 + p*p*p/27)
	s := cmplx.Pow(-q/2+u, 1.0/3)
	if s == 0 {
		s = cmplx.Pow(-q/2-u, 1.0/3)
	}

	shift := complex(b/(3*a), 0)
	var roots [3]complex128
	// The three cube roots of unity rotate the principal solution.
	omega := complex(-0.5, math.Sqrt(3)/2)
	r := s
	for i := 0; i < 3; i++ {
		t := r
		if t != 0 {
			t = r - p/(3*r)
		}
		roots[i] = t - shift
		r *= omega
	}
	return roots
}
