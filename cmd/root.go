package cmd

import (
	"fmt"
	"os"

	"github.com/mfreitez/concremix/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "concremix",
	Short: "Concrete Mix Proportioning Tool",
	Long: `concremix - Concrete Mix Proportioner

A CLI tool for proportioning normal concrete mixes by the three
classic weight methods:
  - ACI 211.1 (American Concrete Institute)
  - DoE/BRE (British Department of the Environment)
  - MCE (Manual del Concreto Estructural, Porrero et al.)

Each run reads a YAML design document, checks the aggregates against
the normative grading envelopes, and prints the batch quantities per
cubic meter together with the full calculation trail.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   concremix v%-45s║\n", version.Version)
		fmt.Println("  ║   Concrete Mix Proportioner                               ║")
		fmt.Printf("  ║   %s ©  %s                                        ║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for proportioning normal concrete mixes by the")
		fmt.Println("  ACI 211.1, DoE/BRE and MCE weight methods.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Target strength from the strength record or tabulated margins")
		fmt.Println("    • Water-cementitious ratio by strength and durability")
		fmt.Println("    • Aggregate proportioning with moisture correction")
		fmt.Println("    • Grading validation against the normative envelopes")
		fmt.Println("    • Grading-curve rendering (terminal or image file)")
		fmt.Println()
		fmt.Println("  Use 'concremix --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
