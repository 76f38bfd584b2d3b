package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"buildyourcv/internal/shared/telemetry"
	"buildyourcv/resume/model"
	"buildyourcv/resume/normalize"
	"buildyourcv/resume/projection"
	"buildyourcv/resume/style"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize a candidate resume JSON file",
	Long:  "Reads a candidate resume from a file or stdin, repairs it into a canonical JSON Resume and prints the result.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNormalize,
}

var (
	normalizeSections []string
	normalizeReport   bool
)

func init() {
	normalizeCmd.Flags().StringSliceVar(&normalizeSections, "sections", nil, "Only include these sections (required sections are always kept)")
	normalizeCmd.Flags().BoolVar(&normalizeReport, "report", false, "Print the repairs to stderr")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	r, report, err := normalize.NormalizeWithReport(raw)
	if err != nil {
		return err
	}
	if normalizeReport {
		for _, rep := range report.Repairs {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\t%s\t%s\n", rep.Action, rep.Path, rep.Detail)
		}
	}
	telemetry.Debug("cli.normalize", map[string]any{"repairs": len(report.Repairs)})

	if cmd.Flags().Changed("sections") {
		cfg := style.Default()
		cfg.VisibleSections = model.ParseSectionIDs(normalizeSections)
		r = projection.Project(r, style.EffectiveVisible(cfg))
	}

	out, err := model.Encode(r)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
