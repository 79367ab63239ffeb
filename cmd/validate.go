package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mfreitez/concremix/internal/config"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/mfreitez/concremix/internal/validation"
	"github.com/spf13/cobra"
)

var (
	validateInput  string
	validateMethod string
	validateUnits  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a design document against the normative requirements",
	Long: `Complete the sieve analyses of both aggregates, classify them against
the grading envelopes of the chosen method, derive the nominal maximum
size and the fineness modulus, and check the specified strength, SCM
content and entrained air against the exposure classes.

Example:
  concremix validate --input design.yaml --method ACI --units SI`,
	Run: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Design document (YAML) [required]")
	validateCmd.Flags().StringVarP(&validateMethod, "method", "m", "", "Design method: ACI, DoE or MCE [required]")
	validateCmd.Flags().StringVarP(&validateUnits, "units", "u", "", "Unit system: SI or MKS (default from CONCREMIX_UNITS)")
	validateCmd.MarkFlagRequired("input")
	validateCmd.MarkFlagRequired("method")
}

// loadGrading completes one sieve analysis from whichever rendition the
// document carries.
func loadGrading(store mix.Store, prefix string, order []string) (validation.Grading, error) {
	if store.Has(prefix + ".gradation.passing") {
		passing, err := store.Grading(prefix + ".gradation.passing")
		if err != nil {
			return validation.Grading{}, err
		}
		return validation.CompleteFromPassing(order, passing), nil
	}
	if store.Has(prefix + ".gradation.retained") {
		retained, err := store.Grading(prefix + ".gradation.retained")
		if err != nil {
			return validation.Grading{}, err
		}
		return validation.CompleteFromRetained(order, retained), nil
	}
	return validation.Grading{}, fmt.Errorf("%s: no sieve analysis in the document", prefix)
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	log, closeLog := config.NewLogger(cfg)
	defer closeLog()

	unitSystem := cfg.Units
	if validateUnits != "" {
		unitSystem = validateUnits
	}

	store, err := mix.LoadFile(validateInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fineSieves, coarseSieves, ok := validation.Sieves(validateMethod)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown method %q (want ACI, DoE or MCE)\n", validateMethod)
		os.Exit(1)
	}

	fine, err := loadGrading(store, "fine_aggregate", fineSieves)
	if err == nil {
		var coarse validation.Grading
		coarse, err = loadGrading(store, "coarse_aggregate", coarseSieves)
		if err == nil {
			runChecks(store, unitSystem, fine, coarse, coarseSieves, validation.NewService(log))
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runChecks(store mix.Store, unitSystem string, fine, coarse validation.Grading, coarseSieves []string, svc *validation.Service) {
	var failures []string

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     DESIGN DOCUMENT VALIDATION - %s METHOD (%s)\n", validateMethod, unitSystem)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	// Grading classification.
	c, err := svc.ClassifyGrading(validateMethod, coarse.Passing, fine.Passing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("GRADING CLASSIFICATION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if c.CoarseCategory != "" {
		fmt.Fprintf(w, "  Coarse aggregate:\t%s\n", c.CoarseCategory)
	} else {
		fmt.Fprintf(w, "  Coarse aggregate:\tno envelope matched\n")
		failures = append(failures, "coarse grading matched no envelope")
	}
	if c.FineCategory != "" {
		fmt.Fprintf(w, "  Fine aggregate:\t%s\n", c.FineCategory)
	} else {
		fmt.Fprintf(w, "  Fine aggregate:\tno envelope matched\n")
		failures = append(failures, "fine grading matched no envelope")
	}

	// Nominal maximum size: the document wins, the grading decides otherwise.
	nms := ""
	if store.Has("coarse_aggregate.NMS") {
		nms, _ = store.Str("coarse_aggregate.NMS")
	}
	if nms == "" {
		detected, ok := svc.NominalMaximumSize(validateMethod, c.CoarseCategory, coarseSieves, coarse.Passing, validation.NMSThreshold)
		if !ok {
			failures = append(failures, "nominal maximum size could not be determined")
		}
		nms = detected
	}
	fmt.Fprintf(w, "  Nominal maximum size:\t%s\n", nms)

	// Fineness modulus.
	fm, fmOK, limited := svc.RequiredFinenessModulus(validateMethod, fine.CumulativeRetained)
	if limited && !fmOK {
		fmt.Fprintf(w, "  Fineness modulus:\t%.2f (out of range)\n", fm)
		failures = append(failures, fmt.Sprintf("fineness modulus %.2f outside the method limits", fm))
	} else {
		fmt.Fprintf(w, "  Fineness modulus:\t%.2f\n", fm)
	}
	w.Flush()
	fmt.Println()

	// Exposure-driven checks.
	fmt.Println("EXPOSURE REQUIREMENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	classes, _ := store.Strings("validation.exposure_classes")

	if store.Has("field_requirements.strength.spec_strength") {
		spec, _ := store.Float("field_requirements.strength.spec_strength")
		if min, max, ok := validation.SpecStrengthBounds(validateMethod, unitSystem); ok && (spec < min || spec > max) {
			failures = append(failures, fmt.Sprintf("specified strength %.0f outside the accepted range [%.0f, %.0f]", spec, min, max))
		}
		ok, required, class, found := svc.CheckSpecStrength(validateMethod, unitSystem, spec, classes)
		switch {
		case !found:
			fmt.Fprintf(w, "  Specified strength:\t%.0f (no exposure floor)\n", spec)
		case ok:
			fmt.Fprintf(w, "  Specified strength:\t%.0f ≥ %.0f (%s)\n", spec, required, class)
		default:
			fmt.Fprintf(w, "  Specified strength:\t%.0f < %.0f (%s)\n", spec, required, class)
			failures = append(failures, fmt.Sprintf("specified strength below the %s minimum of %.0f", class, required))
		}
	}

	if checked, _ := store.Bool("cementitious_materials.SCM.SCM_checked"); checked {
		scmType, _ := store.Str("cementitious_materials.SCM.SCM_type")
		scmContent, _ := store.Float("cementitious_materials.SCM.SCM_content")
		ok, maxPct, class, found := svc.CheckSCMContent(validateMethod, classes, scmType, scmContent)
		switch {
		case !found:
			fmt.Fprintf(w, "  SCM content:\t%.0f%% (no exposure ceiling)\n", scmContent)
		case ok:
			fmt.Fprintf(w, "  SCM content:\t%.0f%% ≤ %.0f%% (%s)\n", scmContent, maxPct, class)
		default:
			fmt.Fprintf(w, "  SCM content:\t%.0f%% > %.0f%% (%s)\n", scmContent, maxPct, class)
			failures = append(failures, fmt.Sprintf("SCM content above the %s ceiling of %.0f%%", class, maxPct))
		}
	}

	if checked, _ := store.Bool("field_requirements.entrained_air_content.is_checked"); checked {
		air, _ := store.Float("field_requirements.entrained_air_content.user_defined")
		ok, required, class, found := svc.CheckEntrainedAir(validateMethod, classes, nms, air)
		switch {
		case !found:
			fmt.Fprintf(w, "  Entrained air:\t%.1f%% (no exposure minimum)\n", air)
		case ok:
			fmt.Fprintf(w, "  Entrained air:\t%.1f%% ≥ %.1f%% (%s)\n", air, required, class)
		default:
			fmt.Fprintf(w, "  Entrained air:\t%.1f%% < %.1f%% (%s)\n", air, required, class)
			failures = append(failures, fmt.Sprintf("entrained air below the %s minimum of %.1f%%", class, required))
		}
	}
	w.Flush()
	fmt.Println()

	if len(failures) > 0 {
		fmt.Println("VALIDATION FAILED:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, f := range failures {
			fmt.Printf("  ✗ %s\n", f)
		}
		fmt.Println()
		os.Exit(1)
	}
	fmt.Println("  ✓ The design document meets all the checked requirements.")
	fmt.Println()
}
