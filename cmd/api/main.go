// Package main is the buildyourcv API server and command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "buildyourcv",
	Short:         "CV import and normalization service",
	Long:          "buildyourcv turns uploaded CVs into canonical JSON Resume documents over HTTP or from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
