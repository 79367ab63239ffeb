package mix

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mfreitez/concremix/internal/matcalc"
)

const sampleInput = `
field_requirements:
  slump_value: 75
  slump_range: "75 mm - 100 mm"
  strength:
    spec_strength: 28.5
    spec_strength_time: "28 días"
  entrained_air_content:
    is_checked: true
    exposure_defined: false
validation:
  exposure_classes: ["F1", "W0", "S0", "C0"]
coarse_aggregate:
  NMS: '1" (25 mm)'
  gradation:
    passing:
      '1" (25 mm)': 97
      '3/4" (19 mm)': 52
      '1/2" (12,5 mm)': null
      'No. 4 (4,75 mm)': 0
`

func load(t *testing.T) *MapStore {
	t.Helper()
	s, err := Load(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestTypedReads(t *testing.T) {
	s := load(t)

	if v, err := s.Float("field_requirements.strength.spec_strength"); err != nil || v != 28.5 {
		t.Fatalf("spec_strength = %v, %v", v, err)
	}
	// Integers read back as floats too.
	if v, err := s.Float("field_requirements.slump_value"); err != nil || v != 75 {
		t.Fatalf("slump_value = %v, %v", v, err)
	}
	if v, err := s.Int("field_requirements.slump_value"); err != nil || v != 75 {
		t.Fatalf("slump_value = %v, %v", v, err)
	}
	if v, err := s.Str("coarse_aggregate.NMS"); err != nil || v != `1" (25 mm)` {
		t.Fatalf("NMS = %q, %v", v, err)
	}
	if v, err := s.Bool("field_requirements.entrained_air_content.is_checked"); err != nil || !v {
		t.Fatalf("is_checked = %v, %v", v, err)
	}

	classes, err := s.Strings("validation.exposure_classes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"F1", "W0", "S0", "C0"}, classes); diff != "" {
		t.Fatalf("exposure classes mismatch (-want +got):\n%s", diff)
	}

	// A null entry marks an unmeasured sieve and is skipped.
	grading, err := s.Grading("coarse_aggregate.gradation.passing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]float64{`1" (25 mm)`: 97, `3/4" (19 mm)`: 52, `No. 4 (4,75 mm)`: 0}
	if diff := cmp.Diff(want, grading); diff != "" {
		t.Fatalf("grading mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingField(t *testing.T) {
	s := load(t)

	if _, err := s.Float("water.water_density"); !errors.Is(err, matcalc.ErrMissingRequiredField) {
		t.Fatalf("want ErrMissingRequiredField, got %v", err)
	}
	if s.Has("water.water_density") {
		t.Fatal("Has must be false for an absent path")
	}
	if s.Has("field_requirements.slump_range") != true {
		t.Fatal("Has must be true for a present path")
	}

	// Optional check-boxes read false when absent.
	if v, err := s.Bool("chemical_admixtures.WRA.WRA_checked"); err != nil || v {
		t.Fatalf("absent checkbox = %v, %v", v, err)
	}
}
