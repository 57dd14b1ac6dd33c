package main

import (
	"fmt"

	"github.com/lendforge/lending-forecast/internal/export"
	"github.com/lendforge/lending-forecast/internal/forecast"
	"github.com/lendforge/lending-forecast/pkg/constants"
	"github.com/lendforge/lending-forecast/pkg/output"
	"github.com/lendforge/lending-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagOutputFormat string

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Run the monthly forecast for all active scenarios",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().StringVarP(&flagOutputFormat, "output-format", "o", "", "output format override: pretty, csv, xlsx")
	// The root command runs the forecast too; it needs the same flag.
	rootCmd.Flags().StringVarP(&flagOutputFormat, "output-format", "o", "", "output format override: pretty, csv, xlsx")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	conf, logger, err := loadForecastSetup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config.
	outputFormat := conf.Output.Format
	if flagOutputFormat != "" {
		outputFormat = flagOutputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		logger.Error("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatXLSX:
		path := conf.Output.File
		if path == "" {
			path = "lending-forecast.xlsx"
		}
		refs := make([]*forecast.Result, len(results))
		for i := range results {
			refs[i] = &results[i]
		}
		if err := export.WriteFile(path, refs); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", path)
	}

	return nil
}
