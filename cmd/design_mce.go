package cmd

import (
	"log/slog"

	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/mce"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/spf13/cobra"
)

var designMCECmd = &cobra.Command{
	Use:   "mce",
	Short: "Proportion a mix with the MCE method (Porrero et al.)",
	Long: `Proportion a normal concrete mix following the Manual del Concreto
Estructural: water-cement ratio by Abrams' law with size and aggregate
corrections, cement by the triangular relationship, and the aggregate
split from the beta relation over the combined grading envelope.

Strengths in the document are read in kgf/cm² under MKS and converted
from MPa under SI.

Example:
  concremix design mce --input design.yaml --units MKS`,
	Run: runDesignMCE,
}

func init() {
	designCmd.AddCommand(designMCECmd)
}

func runDesignMCE(cmd *cobra.Command, args []string) {
	runDesign("MCE", mce.Shape,
		func(trail *audit.Trail, store mix.Store, unitSystem string, log *slog.Logger) bool {
			return mce.NewDesigner(trail, log).Run(store, unitSystem)
		},
		[]headline{
			{"Target strength", "spec_strength.target_strength.target_strength_value", "kgf/cm²"},
			{"Water-cement ratio", "water_cement_ratio.final_alpha", ""},
			{"Beta (fine fraction)", "beta.beta", ""},
			{"Water (corrected)", "water.water_content_correction", "kg"},
			{"Cement", "cementitious_material.cement.cement_content", "kg"},
			{"Fine aggregate (wet)", "fine_aggregate.fine_content_wet", "kg"},
			{"Coarse aggregate (wet)", "coarse_aggregate.coarse_content_wet", "kg"},
			{"Total", "summation.total_content", "kg"},
		})
}
