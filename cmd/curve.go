package cmd

import (
	"fmt"
	"os"

	"github.com/mfreitez/concremix/internal/config"
	"github.com/mfreitez/concremix/internal/diagram"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/mfreitez/concremix/internal/validation"
	"github.com/spf13/cobra"
)

var (
	curveInput     string
	curveMethod    string
	curveAggregate string
	curveCategory  string
	curveOutput    string
	curveHeight    int
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Render the grading curve of an aggregate",
	Long: `Draw the cumulative passing curve of one aggregate from the design
document, as an ASCII chart on the terminal or as a log-axis image
file (.png, .svg or .pdf). With --category the normative envelope of
that grading class is drawn behind the curve.

Examples:
  concremix curve --input design.yaml --method MCE --aggregate fine
  concremix curve -i design.yaml -m ACI -a coarse -c "#57" -o curve.png`,
	Run: runCurve,
}

func init() {
	rootCmd.AddCommand(curveCmd)

	curveCmd.Flags().StringVarP(&curveInput, "input", "i", "", "Design document (YAML) [required]")
	curveCmd.Flags().StringVarP(&curveMethod, "method", "m", "", "Design method: ACI, DoE or MCE [required]")
	curveCmd.Flags().StringVarP(&curveAggregate, "aggregate", "a", "fine", "Aggregate to draw: fine or coarse")
	curveCmd.Flags().StringVarP(&curveCategory, "category", "c", "", "Grading category for the envelope band")
	curveCmd.Flags().StringVarP(&curveOutput, "output", "o", "", "Image file to write instead of the terminal chart")
	curveCmd.Flags().IntVar(&curveHeight, "height", 12, "Height of the terminal chart in rows")
	curveCmd.MarkFlagRequired("input")
	curveCmd.MarkFlagRequired("method")
}

func runCurve(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	log, closeLog := config.NewLogger(cfg)
	defer closeLog()

	store, err := mix.LoadFile(curveInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fineSieves, coarseSieves, ok := validation.Sieves(curveMethod)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown method %q (want ACI, DoE or MCE)\n", curveMethod)
		os.Exit(1)
	}

	coarse := false
	sieveOrder := fineSieves
	switch curveAggregate {
	case "fine":
	case "coarse":
		coarse = true
		sieveOrder = coarseSieves
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown aggregate %q (want fine or coarse)\n", curveAggregate)
		os.Exit(1)
	}

	grading, err := loadGrading(store, curveAggregate+"_aggregate", sieveOrder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	curve := diagram.Curve{
		Name:    curveAggregate + " aggregate",
		Sieves:  sieveOrder,
		Passing: grading.Passing,
	}

	var env *diagram.Envelope
	if curveCategory != "" {
		max, min, ok := validation.EnvelopeBand(curveMethod, curveCategory, coarse)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no %s envelope named %q for the %s aggregate\n",
				curveMethod, curveCategory, curveAggregate)
			os.Exit(1)
		}
		env = &diagram.Envelope{
			Name:   curveCategory,
			Sieves: sieveOrder,
			Max:    max,
			Min:    min,
		}
	}

	if curveOutput != "" {
		if err := diagram.ExportCurve([]diagram.Curve{curve}, env, curveOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Info("grading curve exported", "file", curveOutput)
		fmt.Printf("Grading curve written to %s\n", curveOutput)
		return
	}

	fmt.Println()
	fmt.Println(diagram.RenderASCII(curve, curveHeight))
	if env != nil {
		fmt.Printf("  Envelope %q:\n", env.Name)
		for _, sieve := range sieveOrder {
			lo, okLo := env.Min[sieve]
			hi, okHi := env.Max[sieve]
			if okLo && okHi {
				fmt.Printf("  %-22s %6.1f – %5.1f %%\n", sieve, lo, hi)
			}
		}
		fmt.Println()
	}
}
