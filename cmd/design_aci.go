package cmd

import (
	"log/slog"

	"github.com/mfreitez/concremix/internal/aci"
	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/spf13/cobra"
)

var designACICmd = &cobra.Command{
	Use:   "aci",
	Short: "Proportion a mix with the ACI 211.1 method",
	Long: `Proportion a normal concrete mix by absolute volumes following
ACI 211.1: water demand from slump and maximum size, water-cementitious
ratio from the strength curves and the exposure limits, coarse content
from the dry-rodded bulk volume, fine aggregate by the residual volume.

Example:
  concremix design aci --input design.yaml --units SI`,
	Run: runDesignACI,
}

func init() {
	designCmd.AddCommand(designACICmd)
}

func runDesignACI(cmd *cobra.Command, args []string) {
	runDesign("ACI 211.1", aci.Shape,
		func(trail *audit.Trail, store mix.Store, unitSystem string, log *slog.Logger) bool {
			return aci.NewDesigner(trail, log).Run(store, unitSystem)
		},
		[]headline{
			{"Target strength", "spec_strength.target_strength.target_strength_value", "MPa"},
			{"Water-cementitious ratio", "water_cementitious_materials_ratio.w_cm", ""},
			{"Water (corrected)", "water.water_content_correction", "kg"},
			{"Cement", "cementitious_material.cement.cement_content", "kg"},
			{"SCM", "cementitious_material.scm.scm_content", "kg"},
			{"Fine aggregate (wet)", "fine_aggregate.fine_content_wet", "kg"},
			{"Coarse aggregate (wet)", "coarse_aggregate.coarse_content_wet", "kg"},
			{"Total", "summation.total_content", "kg"},
		})
}
