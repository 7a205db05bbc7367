package main

import (
	"fmt"
	"os"

	"utmequiz/internal/app"
	"utmequiz/internal/report"
	"utmequiz/internal/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var xlsxOutput string

var validateCmd = &cobra.Command{
	Use:   "validate <directory> [report.json]",
	Short: "Validate every .txt question file in a directory",
	Long: `Validates the question files, prints a summary and the cluster readiness,
and saves the JSON report (default validation-report.json).

Files failing validation do not fail the command; only a missing directory
or a directory without .txt files does.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&xlsxOutput, "xlsx", "", "also write the report as an Excel workbook")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := args[0]
	reportPath := "validation-report.json"
	if len(args) > 1 {
		reportPath = args[1]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nValidating files in: %s\n", dir)

	v := validation.NewValidator(newParser(), app.LoadConfig().MaxFileBytes, logger)
	rep, err := v.ValidateDirectory(dir)
	if err != nil {
		return err
	}

	clusters := validation.CheckClusters(rep.Results(), cat.Clusters())
	report.PrintSummary(out, rep, clusters)

	if err := report.Save(reportPath, rep); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\nReport saved to: %s\n%s\n", rule, reportPath, rule)

	if xlsxOutput != "" {
		f, err := os.Create(xlsxOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", xlsxOutput, err)
		}
		if err := report.WriteXLSX(f, rep, clusters); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", xlsxOutput, err)
		}
		logger.Info("excel report written", zap.String("path", xlsxOutput))
	}

	if rep.Summary.InvalidFiles > 0 {
		fmt.Fprintln(out, "\nSome files failed validation; valid files will be processed, invalid files skipped.")
	} else {
		fmt.Fprintln(out, "\nAll files passed validation.")
	}
	return nil
}
