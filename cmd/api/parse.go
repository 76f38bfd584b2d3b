package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"buildyourcv/internal/bootstrap"
	"buildyourcv/internal/cv"
	"buildyourcv/internal/shared/config"
	"buildyourcv/internal/shared/telemetry"
	"buildyourcv/resume/model"
	"buildyourcv/resume/style"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the plain text of a PDF, DOCX or TXT CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract, structure and normalize a CV file",
	Long:  "Runs the full import pipeline against the configured LLM provider and prints the canonical JSON Resume.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var parseOut string

func init() {
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write the artifact into this directory instead of stdout")
	rootCmd.AddCommand(extractCmd, parseCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	text, err := cv.NewService(nil).ExtractText(cmd.Context(), data, filepath.Base(args[0]))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	telemetry.SetLevel(cfg.LogLevel)

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	state, _, err := app.CVService.Pipeline(cmd.Context(), cv.PipelineInput{
		FileName: filepath.Base(args[0]),
		File:     data,
		Current:  model.DefaultTemplate(),
		Styles:   style.Default(),
	})
	if err != nil {
		return err
	}

	out, fileName, err := app.CVService.Export(state.Resume)
	if err != nil {
		return err
	}
	if parseOut == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	path := filepath.Join(parseOut, fileName)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), path)
	return nil
}
