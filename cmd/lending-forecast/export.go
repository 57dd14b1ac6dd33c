package main

import (
	"fmt"

	"github.com/lendforge/lending-forecast/internal/export"
	"github.com/lendforge/lending-forecast/internal/forecast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagExportFile string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all active scenarios to a spreadsheet workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFile, "file", "f", "lending-forecast.xlsx", "destination workbook path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	conf, logger, err := loadForecastSetup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		logger.Error("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	refs := make([]*forecast.Result, len(results))
	for i := range results {
		refs[i] = &results[i]
	}
	if err := export.WriteFile(flagExportFile, refs); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("workbook written",
		zap.String("op", "main"),
		zap.String("file", flagExportFile),
		zap.Int("scenarios", len(results)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", flagExportFile)
	return nil
}
