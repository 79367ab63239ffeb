package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/config"
	"github.com/mfreitez/concremix/internal/diagram"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/spf13/cobra"
)

var (
	designInput string
	designUnits string
	designJSON  bool
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Proportion a concrete mix from a design document",
	Long: `Run one of the proportioning methods against a YAML design document
and print the batch quantities per cubic meter of concrete.

The design document carries the field requirements (slump, strength,
exposure classes), the material properties of the cement and both
aggregates, and the optional chemical admixtures. See the method
subcommands for the expected fields.`,
}

func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.PersistentFlags().StringVarP(&designInput, "input", "i", "", "Design document (YAML) [required]")
	designCmd.PersistentFlags().StringVarP(&designUnits, "units", "u", "", "Unit system: SI or MKS (default from CONCREMIX_UNITS)")
	designCmd.PersistentFlags().BoolVar(&designJSON, "json", false, "Print the full calculation trail as JSON")
	designCmd.MarkPersistentFlagRequired("input")
}

// headline is one line of the result box: a label and the trail path that
// backs it.
type headline struct {
	label string
	path  string
	unit  string
}

// runDesign loads the document, runs one method and prints the outcome.
// A failed run prints the error registry and exits non-zero.
func runDesign(method string, shape audit.Shape, run func(*audit.Trail, mix.Store, string, *slog.Logger) bool, headlines []headline) {
	cfg := config.Load()
	log, closeLog := config.NewLogger(cfg)
	defer closeLog()

	unitSystem := cfg.Units
	if designUnits != "" {
		unitSystem = designUnits
	}

	store, err := mix.LoadFile(designInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	trail := audit.NewTrail(shape, log)
	if !run(trail, store, unitSystem, log) {
		fmt.Fprintln(os.Stderr, "DESIGN FAILED:")
		sections := trail.ErrorSections()
		registry := trail.Errors()
		for _, section := range sections {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", section, registry[section])
		}
		os.Exit(1)
	}

	if designJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(trail.Data()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printResults(method, unitSystem, trail, headlines)
}

func printResults(method, unitSystem string, trail *audit.Trail, headlines []headline) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     CONCRETE MIX PROPORTIONING - %s METHOD (%s)\n", method, unitSystem)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	var lines []string
	for _, h := range headlines {
		v, err := trail.Float(h.path)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-28s %10.2f %s", h.label, v, h.unit))
	}
	fmt.Println(diagram.DrawSummaryBox("BATCH QUANTITIES PER m³", lines))

	flat := make(map[string]any)
	flatten("", trail.Data(), flat)

	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	section := ""
	var w *tabwriter.Writer
	for _, p := range paths {
		top, rest, _ := strings.Cut(p, ".")
		if top != section {
			if w != nil {
				w.Flush()
				fmt.Println()
			}
			section = top
			fmt.Printf("%s:\n", strings.ToUpper(strings.ReplaceAll(section, "_", " ")))
			fmt.Println("───────────────────────────────────────────────────────────────")
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		}
		fmt.Fprintf(w, "  %s:\t%s\n", rest, formatValue(flat[p]))
	}
	if w != nil {
		w.Flush()
	}
	fmt.Println()
}

func flatten(prefix string, node map[string]any, out map[string]any) {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if child, ok := value.(map[string]any); ok {
			flatten(path, child, out)
			continue
		}
		out[path] = value
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		return fmt.Sprintf("%.4f", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
