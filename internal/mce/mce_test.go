package mce

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/matcalc"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/mfreitez/concremix/internal/units"
)

func almostEqual(t *testing.T, got, want, delta float64) {
	t.Helper()
	if math.Abs(got-want) > delta {
		t.Fatalf("got %.6f, want %.6f (±%.6f)", got, want, delta)
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var mildExposure = []string{"Despreciable", "Despreciable", "Despreciable", "Atmósfera común"}

func TestRequiredStrengthKnown(t *testing.T) {
	cases := []struct {
		spec       float64
		stdDev     float64
		sampleSize int
		want       float64
	}{
		{210, 35, 15, 270.0446},
		{250, 70, 20, 391.9796},
		{300, 50, 25, 385.5615},
		{350, 15, 30, 370.115},
		{365, 20, 35, 391.82},
		{410, 50, 15, 504.778},
	}
	for _, tc := range cases {
		ts, err := RequiredStrength(tc.spec, StdDev{
			Known: true, Value: tc.stdDev, SampleSize: tc.sampleSize, DefectiveLevel: "9",
		})
		if err != nil {
			t.Fatalf("spec %.0f: unexpected error: %v", tc.spec, err)
		}
		almostEqual(t, ts.Value, tc.want, 1e-4)
	}
}

func TestRequiredStrengthMargins(t *testing.T) {
	cases := []struct {
		spec    float64
		control string
		want    float64
	}{
		{200, "Excelente", 245},
		{200, "Aceptable", 280},
		{200, "Sin control", 330},
		{210, "Excelente", 270},
		{210, "Aceptable", 305},
		{210, "Sin control", 380},
		{350, "Excelente", 410},
		{350, "Aceptable", 445},
		{350, "Sin control", 520},
		{360, "Excelente", 435},
		{360, "Aceptable", 470},
		{360, "Sin control", 570},
	}
	for _, tc := range cases {
		ts, err := RequiredStrength(tc.spec, StdDev{Unknown: true, QualityControl: tc.control})
		if err != nil {
			t.Fatalf("spec %.0f %s: unexpected error: %v", tc.spec, tc.control, err)
		}
		almostEqual(t, ts.Value, tc.want, 1e-9)
	}
}

func TestRequiredStrengthNoBranch(t *testing.T) {
	_, err := RequiredStrength(250, StdDev{})
	if !errors.Is(err, matcalc.ErrUnreachableConfiguration) {
		t.Fatalf("want ErrUnreachableConfiguration, got %v", err)
	}
}

func TestWaterCementRatio(t *testing.T) {
	cases := []struct {
		age  string
		want float64
	}{
		{"7 días", 0.4099},
		{"28 días", 0.5090},
		{"90 días", 0.5764},
	}
	for _, tc := range cases {
		a, err := WaterCementRatio(300, tc.age, `1" (25 mm)`, CoarseCrushed, FineNatural, mildExposure, AbramsConstants{})
		if err != nil {
			t.Fatalf("age %s: unexpected error: %v", tc.age, err)
		}
		almostEqual(t, a.Final, tc.want, 0.001)
	}
}

func TestWaterCementRatioCorrections(t *testing.T) {
	const design = 0.2731329123
	cases := []struct {
		nms        string
		coarseType string
		fineType   string
		want       float64
	}{
		{`3" (75 mm)`, CoarseCrushed, FineNatural, 0.74 * design},
		{`2-1/2" (63 mm)`, CoarseCrushed, FineNatural, 0.78 * design},
		{`2" (50 mm)`, CoarseCrushed, FineNatural, 0.82 * design},
		{`1-1/2" (37,5 mm)`, CoarseCrushed, FineNatural, 0.91 * design},
		{`1" (25 mm)`, CoarseCrushed, FineNatural, 1.00 * design},
		{`3/4" (19 mm)`, CoarseCrushed, FineNatural, 1.05 * design},
		{`1/2" (12,5 mm)`, CoarseCrushed, FineNatural, 1.10 * design},
		{`3/8" (9,5 mm)`, CoarseCrushed, FineNatural, 1.30 * design},
		{`1/4" (6,3 mm)`, CoarseCrushed, FineNatural, 1.60 * design},

		{`1" (25 mm)`, CoarseCrushed, FineCrushed, 1.14 * design},
		{`1" (25 mm)`, CoarseSemiCrushed, FineNatural, 0.97 * design},
		{`1" (25 mm)`, CoarseSemiCrushed, FineCrushed, 1.10 * design},
		{`1" (25 mm)`, CoarseNaturalGravel, FineNatural, 0.91 * design},
		{`1" (25 mm)`, CoarseNaturalGravel, FineCrushed, 0.93 * design},
	}
	for _, tc := range cases {
		a, err := WaterCementRatio(500, "28 días", tc.nms, tc.coarseType, tc.fineType, mildExposure, AbramsConstants{})
		if err != nil {
			t.Fatalf("%s (%s, %s): unexpected error: %v", tc.nms, tc.coarseType, tc.fineType, err)
		}
		almostEqual(t, a.Final, tc.want, 1e-7)
	}
}

func TestWaterCementRatioCustomConstants(t *testing.T) {
	cases := []struct {
		age  string
		m, n float64
		want float64
	}{
		{"7 días", 945.6, 13.1, 0.4463},
		{"28 días", 945.6, 8.69, 0.5310},
		{"90 días", 945.6, 7.71, 0.5621},
	}
	for _, tc := range cases {
		a, err := WaterCementRatio(300, tc.age, `1" (25 mm)`, CoarseCrushed, FineNatural, mildExposure,
			AbramsConstants{M: tc.m, N: tc.n})
		if err != nil {
			t.Fatalf("age %s: unexpected error: %v", tc.age, err)
		}
		almostEqual(t, a.Final, tc.want, 1e-4)
	}
}

func TestWaterCementRatioUnknownAge(t *testing.T) {
	_, err := WaterCementRatio(300, "14 días", `1" (25 mm)`, CoarseCrushed, FineNatural, mildExposure, AbramsConstants{})
	if !errors.Is(err, matcalc.ErrOutOfRangeLookup) {
		t.Fatalf("want ErrOutOfRangeLookup, got %v", err)
	}
}

func TestCementContent(t *testing.T) {
	cases := []struct {
		slump float64
		alpha float64
		want  float64
	}{
		{75, 0.455, 450.3214128},
		{85, 0.49, 417.2340426},
		{50.8, 0.48, 394.686432},
		{60, 0.48, 405.338824},
		{80, 0.43, 489.680733},
		{10, 0.50, 288.580251},
		{0, 0.50, 270},
	}
	for _, tc := range cases {
		c, err := CementContent(tc.slump, tc.alpha, `1" (25 mm)`, CoarseCrushed, FineNatural,
			mildExposure, nil, DefaultCementConstants)
		if err != nil {
			t.Fatalf("slump %.1f: unexpected error: %v", tc.slump, err)
		}
		almostEqual(t, c.Final, tc.want, 1e-6)
	}
}

func TestCementContentCorrections(t *testing.T) {
	// K=500 with zero exponents pins the design content at 500, leaving
	// only the correction factors.
	constants := CementConstants{K: 500, N: 0, M: 0}
	cases := []struct {
		nms        string
		coarseType string
		fineType   string
		want       float64
	}{
		{`3" (75 mm)`, CoarseCrushed, FineNatural, 0.82 * 500},
		{`2-1/2" (63 mm)`, CoarseCrushed, FineNatural, 0.85 * 500},
		{`2" (50 mm)`, CoarseCrushed, FineNatural, 0.88 * 500},
		{`1-1/2" (37,5 mm)`, CoarseCrushed, FineNatural, 0.93 * 500},
		{`1" (25 mm)`, CoarseCrushed, FineNatural, 1.00 * 500},
		{`3/4" (19 mm)`, CoarseCrushed, FineNatural, 1.05 * 500},
		{`1/2" (12,5 mm)`, CoarseCrushed, FineNatural, 1.14 * 500},
		{`3/8" (9,5 mm)`, CoarseCrushed, FineNatural, 1.20 * 500},
		{`1/4" (6,3 mm)`, CoarseCrushed, FineNatural, 1.33 * 500},

		{`1" (25 mm)`, CoarseCrushed, FineCrushed, 1.28 * 500},
		{`1" (25 mm)`, CoarseSemiCrushed, FineNatural, 0.93 * 500},
		{`1" (25 mm)`, CoarseSemiCrushed, FineCrushed, 1.23 * 500},
		{`1" (25 mm)`, CoarseNaturalGravel, FineNatural, 0.90 * 500},
		{`1" (25 mm)`, CoarseNaturalGravel, FineCrushed, 0.96 * 500},
	}
	for _, tc := range cases {
		c, err := CementContent(100, 0.5, tc.nms, tc.coarseType, tc.fineType, mildExposure, nil, constants)
		if err != nil {
			t.Fatalf("%s (%s, %s): unexpected error: %v", tc.nms, tc.coarseType, tc.fineType, err)
		}
		almostEqual(t, c.Final, tc.want, 1e-9)
	}
}

func TestCementContentWithTheta(t *testing.T) {
	cases := []struct {
		theta float64
		alpha float64
		want  float64
	}{
		{134.8, 0.50, 331.9165},
		{136.8, 0.55, 297.5874},
		{141.8, 0.35, 555.1211},
		{222, 0.60, 431.2771},
		{0, 0.35, 270},
		// A negative theta falls back to the slump relationship.
		{-10, 0.50, 360.2435},
	}
	for _, tc := range cases {
		theta := tc.theta
		c, err := CementContent(40, tc.alpha, `1" (25 mm)`, CoarseCrushed, FineNatural,
			mildExposure, &theta, DefaultCementConstants)
		if err != nil {
			t.Fatalf("theta %.1f: unexpected error: %v", tc.theta, err)
		}
		almostEqual(t, c.Final, tc.want, 1e-4)
	}
}

func TestEntrappedAirVolume(t *testing.T) {
	const cementContent = 100
	cases := []struct {
		nms string
		mm  float64
	}{
		{`3-1/2" (90 mm)`, 90},
		{`3" (75 mm)`, 75},
		{`2-1/2" (63 mm)`, 63},
		{`2" (50 mm)`, 50},
		{`1-1/2" (37,5 mm)`, 37.5},
		{`1" (25 mm)`, 25},
		{`3/4" (19 mm)`, 19},
		{`1/2" (12,5 mm)`, 12.5},
		{`3/8" (9,5 mm)`, 9.5},
		{`1/4" (6,3 mm)`, 6.3},
	}
	for _, tc := range cases {
		v, err := EntrappedAirVolume(tc.nms, cementContent)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.nms, err)
		}
		almostEqual(t, v, 0.001*cementContent/tc.mm, 1e-9)
	}
}

func TestFineContent(t *testing.T) {
	fine, err := FineContent(0.015, 83.0/630.0, 0.21, 1000, 2.68, 2.70, 0.45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, fine, 778.93773574, 1e-7)
}

func TestFineContentInfeasible(t *testing.T) {
	_, err := FineContent(0.05, 0.40, 0.60, 1000, 2.68, 2.70, 0.45)
	if !errors.Is(err, matcalc.ErrInfeasibleMix) {
		t.Fatalf("want ErrInfeasibleMix, got %v", err)
	}
}

func TestCoarseContent(t *testing.T) {
	almostEqual(t, CoarseContent(100, 0.25), 300, 1e-9)
}

func TestFillAllSieves(t *testing.T) {
	filled := FillAllSieves(map[string]float64{
		`1" (25 mm)`:      97,
		`3/4" (19 mm)`:    52,
		`3/8" (9,5 mm)`:   6,
		`No. 4 (4,75 mm)`: 0,
	})

	for _, sieve := range []string{`3-1/2" (90 mm)`, `3" (75 mm)`, `2-1/2" (63 mm)`, `2" (50 mm)`, `1-1/2" (37,5 mm)`} {
		if got := filled[sieve]; got != 100 {
			t.Fatalf("sieve %s: got %.1f, want 100", sieve, got)
		}
	}
	for _, sieve := range []string{`No. 8 (2,36 mm)`, `No. 30 (0,600 mm)`, `No. 100 (0,150 mm)`} {
		if got, ok := filled[sieve]; !ok || got != 0 {
			t.Fatalf("sieve %s: got %.1f, want 0", sieve, got)
		}
	}
	// Sieves between measured ones stay absent.
	if _, ok := filled[`1/2" (12,5 mm)`]; ok {
		t.Fatal(`sieve 1/2" should stay absent`)
	}
	if got := filled[`1" (25 mm)`]; got != 97 {
		t.Fatalf("measured sieve overwritten: got %.1f", got)
	}
}

var betaCoarse = map[string]float64{
	`3-1/2" (90 mm)`:   100,
	`3" (75 mm)`:       100,
	`2-1/2" (63 mm)`:   100,
	`2" (50 mm)`:       100,
	`1-1/2" (37,5 mm)`: 100,
	`1" (25 mm)`:       97,
	`3/4" (19 mm)`:     52,
	`1/2" (12,5 mm)`:   25,
	`3/8" (9,5 mm)`:    6,
	`1/4" (6,3 mm)`:    1,
	`No. 4 (4,75 mm)`:  0,
	`No. 8 (2,36 mm)`:  0,
	`No. 16 (1,18 mm)`: 0,
	`No. 30 (0,600 mm)`: 0,
	`No. 50 (0,300 mm)`: 0,
	`No. 100 (0,150 mm)`: 0,
}

var betaFine = map[string]float64{
	`3-1/2" (90 mm)`:   100,
	`3" (75 mm)`:       100,
	`2-1/2" (63 mm)`:   100,
	`2" (50 mm)`:       100,
	`1-1/2" (37,5 mm)`: 100,
	`1" (25 mm)`:       100,
	`3/4" (19 mm)`:     100,
	`1/2" (12,5 mm)`:   100,
	`3/8" (9,5 mm)`:    100,
	`1/4" (6,3 mm)`:    96,
	`No. 4 (4,75 mm)`:  86,
	`No. 8 (2,36 mm)`:  68,
	`No. 16 (1,18 mm)`: 40,
	`No. 30 (0,600 mm)`: 32,
	`No. 50 (0,300 mm)`: 12,
	`No. 100 (0,150 mm)`: 4,
}

func TestBeta(t *testing.T) {
	b, err := Beta(`1" (25 mm)`, betaCoarse, betaFine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, b.Min, 41.5, 0.5)
	almostEqual(t, b.Max, 62.5, 0.5)
	almostEqual(t, b.Mean, (b.Min+b.Max)/2, 1e-9)
	almostEqual(t, b.Economic, (b.Mean+b.Min)/2, 1e-9)
	almostEqual(t, b.Value, b.Economic/100, 1e-9)
}

func TestBetaUnknownSize(t *testing.T) {
	_, err := Beta(`2" (50 mm)`, betaCoarse, betaFine)
	if !errors.Is(err, matcalc.ErrOutOfRangeLookup) {
		t.Fatalf("want ErrOutOfRangeLookup, got %v", err)
	}
}

const designerDoc = `
field_requirements:
  slump: 50
  strength:
    spec_strength: 210
    spec_strength_time: "28 días"
    std_dev_known:
      std_dev_known_enabled: false
    std_dev_unknown:
      std_dev_unknown_enabled: true
      quality_control: "Excelente"
validation:
  exposure_classes: ["Atmósfera común", "N/A", "N/A", "N/A"]
cementitious_materials:
  relative_density: 3.15
water:
  water_density: 1000
fine_aggregate:
  info:
    type: "Natural"
  physical_prop:
    relative_density_SSD: 2.65
    PUS: 1600
  moisture:
    moisture_content: 2.0
    absorption_content: 1.0
  gradation:
    passing:
      '1/4" (6,3 mm)': 96
      'No. 4 (4,75 mm)': 86
      'No. 8 (2,36 mm)': 68
      'No. 16 (1,18 mm)': 40
      'No. 30 (0,600 mm)': 32
      'No. 50 (0,300 mm)': 12
      'No. 100 (0,150 mm)': 4
coarse_aggregate:
  info:
    type: "Triturado"
  physical_prop:
    relative_density_SSD: 2.70
    PUS: 1500
  moisture:
    moisture_content: 1.5
    absorption_content: 1.2
  gradation:
    passing:
      '1" (25 mm)': 97
      '3/4" (19 mm)': 52
      '1/2" (12,5 mm)': 25
      '3/8" (9,5 mm)': 6
      '1/4" (6,3 mm)': 1
      'No. 4 (4,75 mm)': 0
  NMS: '1" (25 mm)'
`

func TestDesignerRun(t *testing.T) {
	store, err := mix.Load(strings.NewReader(designerDoc))
	if err != nil {
		t.Fatalf("loading design document: %v", err)
	}
	trail := audit.NewTrail(Shape, discard())
	d := NewDesigner(trail, discard())

	if !d.Run(store, units.MKS) {
		t.Fatalf("run failed: %v", trail.Errors())
	}
	if trail.HasErrors() {
		t.Fatalf("unexpected registered errors: %v", trail.Errors())
	}

	get := func(path string) float64 {
		t.Helper()
		v, err := trail.Float(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		return v
	}

	// Excelente control on 210 kgf/cm² adds the 60 kgf/cm² margin.
	almostEqual(t, get("spec_strength.target_strength.target_strength_value"), 270, 1e-9)
	almostEqual(t, get("spec_strength.target_strength.margin"), 60, 1e-9)

	// 1"/Triturado/Natural carries unit corrections, and Atmósfera común's
	// 0.75 ceiling does not bind, so Abrams' law alone sets the ratio.
	wantAlpha := (math.Log10(902.5) - math.Log10(270)) / math.Log10(8.69)
	alpha := get("water_cement_ratio.final_alpha")
	almostEqual(t, alpha, wantAlpha, 1e-9)
	almostEqual(t, get("water_cement_ratio.used_alpha"), alpha, 1e-9)
	almostEqual(t, get("water_cement_ratio.reduced_alpha"), alpha, 1e-9)
	almostEqual(t, get("water_cement_ratio.min_alpha"), 0.75, 1e-9)

	beta := get("beta.beta")
	almostEqual(t, get("beta.beta_min"), 41.5, 0.5)
	almostEqual(t, get("beta.beta_max"), 62.5, 0.5)
	almostEqual(t, beta, get("beta.beta_economic")/100, 1e-9)

	wantCement := 117.2 * math.Pow(5, 0.16) * math.Pow(alpha, -1.3)
	cement := get("cementitious_material.cement.cement_content")
	almostEqual(t, cement, wantCement, 1e-9)
	almostEqual(t, get("cementitious_material.cement.min_cement_content"), 270, 1e-9)

	water := get("water.water_content")
	almostEqual(t, water, cement*alpha, 1e-9)
	almostEqual(t, get("air.entrapped_air_content"), cement/25, 1e-9)

	fineSSD := get("fine_aggregate.fine_content_ssd")
	coarseSSD := get("coarse_aggregate.coarse_content_ssd")
	almostEqual(t, coarseSSD, fineSSD*(1/beta-1), 1e-9)

	// The absolute volumes of all components close the cubic meter.
	totalAbs := get("water.water_abs_volume") + get("cementitious_material.cement.cement_abs_volume") +
		get("fine_aggregate.fine_abs_volume") + get("coarse_aggregate.coarse_abs_volume") +
		get("air.entrapped_air_content")
	almostEqual(t, totalAbs, get("summation.total_abs_volume"), 1e-9)
	almostEqual(t, totalAbs, 1000, 1e-6)

	fineWet := get("fine_aggregate.fine_content_wet")
	coarseWet := get("coarse_aggregate.coarse_content_wet")
	almostEqual(t, fineWet, fineSSD*102/101, 1e-9)
	almostEqual(t, coarseWet, coarseSSD*101.5/101.2, 1e-9)

	wantCorrected := water + (fineSSD - fineWet) + (coarseSSD - coarseWet)
	almostEqual(t, get("water.water_content_correction"), wantCorrected, 1e-9)
	almostEqual(t, get("summation.total_content"), wantCorrected+cement+fineWet+coarseWet, 1e-9)
}

func TestDesignerRunWithTheta(t *testing.T) {
	doc := strings.Replace(designerDoc, "field_requirements:\n  slump: 50\n",
		"field_requirements:\n  slump: 50\n  theta: 134.8\n", 1)
	store, err := mix.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("loading design document: %v", err)
	}
	trail := audit.NewTrail(Shape, discard())
	d := NewDesigner(trail, discard())

	if !d.Run(store, units.MKS) {
		t.Fatalf("run failed: %v", trail.Errors())
	}

	alpha, err := trail.Float("water_cement_ratio.final_alpha")
	if err != nil {
		t.Fatalf("reading ratio: %v", err)
	}
	cement, err := trail.Float("cementitious_material.cement.cement_content")
	if err != nil {
		t.Fatalf("reading cement content: %v", err)
	}
	want := math.Max(134.8*math.Pow(alpha, -1.3), 270)
	almostEqual(t, cement, want, 1e-9)
}

func TestDesignerRunReportsMissingInput(t *testing.T) {
	store, err := mix.Load(strings.NewReader("field_requirements:\n  slump: 50\n"))
	if err != nil {
		t.Fatalf("loading design document: %v", err)
	}
	trail := audit.NewTrail(Shape, discard())
	d := NewDesigner(trail, discard())

	if d.Run(store, units.MKS) {
		t.Fatal("run succeeded with a missing design document")
	}
	if _, ok := trail.Errors()["DATA ENTRY"]; !ok {
		t.Fatalf("want a DATA ENTRY error, got %v", trail.Errors())
	}
}
