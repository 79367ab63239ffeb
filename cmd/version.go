package cmd

import (
	"fmt"

	"github.com/mfreitez/concremix/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of concremix",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("concremix v%s\n", version.Version)
		fmt.Println("Concrete Mix Proportioning Tool")
		fmt.Println("ACI 211.1 / DoE (BRE) / MCE (Porrero et al.)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
