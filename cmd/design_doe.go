package cmd

import (
	"log/slog"

	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/doe"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/spf13/cobra"
)

var designDoECmd = &cobra.Command{
	Use:   "doe",
	Short: "Proportion a mix with the DoE (BRE) method",
	Long: `Proportion a normal concrete mix following the British DoE method:
target strength with the statistical margin, free-water/cement ratio
from the strength development curves capped by the exposure limit,
wet-density regression for the total aggregate, and the fine fraction
from the percentage passing the 600 µm sieve.

Example:
  concremix design doe --input design.yaml --units SI`,
	Run: runDesignDoE,
}

func init() {
	designCmd.AddCommand(designDoECmd)
}

func runDesignDoE(cmd *cobra.Command, args []string) {
	runDesign("DoE", doe.Shape,
		func(trail *audit.Trail, store mix.Store, unitSystem string, log *slog.Logger) bool {
			return doe.NewDesigner(trail, log).Run(store, unitSystem)
		},
		[]headline{
			{"Target strength", "spec_strength.target_strength.target_strength_value", "MPa"},
			{"Free-water/cement ratio", "water_cementitious_materials_ratio.w_cm", ""},
			{"Water (corrected)", "water.water_content_correction", "kg"},
			{"Cement", "cementitious_material.cement.cement_content", "kg"},
			{"SCM", "cementitious_material.scm.scm_content", "kg"},
			{"Fine aggregate (wet)", "fine_aggregate.fine_content_wet", "kg"},
			{"Coarse aggregate (wet)", "coarse_aggregate.coarse_content_wet", "kg"},
			{"Total", "summation.total_content", "kg"},
		})
}
