package matcalc

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(t *testing.T, got, want, delta float64) {
	t.Helper()
	if math.Abs(got-want) > delta {
		t.Fatalf("got %.6f, want %.6f (±%.6f)", got, want, delta)
	}
}

func TestAbsoluteVolume(t *testing.T) {
	v, err := AbsoluteVolume(350, 3.15, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, v, 0.111111, 1e-6)

	if _, err := AbsoluteVolume(350, 0, 1000); !errors.Is(err, ErrInvalidDensity) {
		t.Fatalf("want ErrInvalidDensity, got %v", err)
	}
	if _, err := AbsoluteVolume(350, 3.15, 0); !errors.Is(err, ErrInvalidDensity) {
		t.Fatalf("want ErrInvalidDensity, got %v", err)
	}
}

func TestApparentVolume(t *testing.T) {
	v, err := ApparentVolume(633.6, 1600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, v, 396, 1e-9)

	if _, err := ApparentVolume(100, 0); !errors.Is(err, ErrInvalidDensity) {
		t.Fatalf("want ErrInvalidDensity, got %v", err)
	}
}

func TestWetContent(t *testing.T) {
	wet, err := WetContent(800, 2.0, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, wet, 800*102.0/101.0, 1e-9)

	if _, err := WetContent(800, 2.0, -100); err == nil {
		t.Fatal("want error for zero divisor")
	}
}

func TestWaterCorrection(t *testing.T) {
	got := WaterCorrection(180, 800, 808, 1000, 1003)
	almostEqual(t, got, 180+(800-808)+(1000-1003), 1e-9)
}

func TestAdmixtureContent(t *testing.T) {
	c, err := AdmixtureContent(400, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, c, 6, 1e-9)

	if _, err := AdmixtureContent(400, 0); !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("want ErrMissingRequiredField, got %v", err)
	}
}

func TestNominalSizeMM(t *testing.T) {
	cases := []struct {
		designation string
		want        float64
	}{
		{`1" (25 mm)`, 25},
		{`1-1/2" (37,5 mm)`, 37.5},
		{`3/8" (9,5 mm)`, 9.5},
		{`No. 30 (0,600 mm)`, 0.600},
		{`N/A (20 mm)`, 20},
	}
	for _, tc := range cases {
		got, err := NominalSizeMM(tc.designation)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.designation, err)
		}
		almostEqual(t, got, tc.want, 1e-9)
	}

	if _, err := NominalSizeMM("sin tamiz"); !errors.Is(err, ErrOutOfRangeLookup) {
		t.Fatalf("want ErrOutOfRangeLookup, got %v", err)
	}
}

func TestQuartile(t *testing.T) {
	z, ok := Quartile("9")
	if !ok {
		t.Fatal("quartile for 9% not tabulated")
	}
	almostEqual(t, z, -1.341, 1e-9)

	z, ok = Quartile("5")
	if !ok {
		t.Fatal("quartile for 5% not tabulated")
	}
	almostEqual(t, z, -1.645, 1e-9)

	if _, ok := Quartile("3"); ok {
		t.Fatal("unexpected quartile for 3%")
	}
}

func TestKFactor(t *testing.T) {
	cases := map[int]float64{15: 1.16, 20: 1.08, 25: 1.03, 30: 1.00, 35: 1.00, 18: 1.00}
	for n, want := range cases {
		almostEqual(t, KFactor(n), want, 1e-9)
	}
}

func TestEntrappedAirVolume(t *testing.T) {
	cases := []struct {
		nms  string
		want float64
	}{
		{`3-1/2" (90 mm)`, 0.0015},
		{`3" (75 mm)`, 0.003},
		{`2-1/2" (63 mm)`, 0.004},
		{`2" (50 mm)`, 0.005},
		{`1-1/2" (37,5 mm)`, 0.010},
		{`1" (25 mm)`, 0.015},
		{`3/4" (19 mm)`, 0.020},
		{`1/2" (12,5 mm)`, 0.025},
		{`3/8" (9,5 mm)`, 0.030},
	}
	for _, tc := range cases {
		got, err := EntrappedAirVolume(tc.nms)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.nms, err)
		}
		almostEqual(t, got, tc.want, 1e-9)
	}

	if _, err := EntrappedAirVolume(`6" (150 mm)`); !errors.Is(err, ErrOutOfRangeLookup) {
		t.Fatalf("want ErrOutOfRangeLookup, got %v", err)
	}
}
