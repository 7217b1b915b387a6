// cmd/dataqual/report.go

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dataqual/dataqual/pkg/export"
	"github.com/dataqual/dataqual/pkg/ingest"
	"github.com/dataqual/dataqual/pkg/validator"
)

var (
	reportSource string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report [input]",
	Short: "Generate a quality report without cleaning",
	Long: `Report reads a dataset and prints its quality report as it stands,
without applying any cleaning steps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := runOpts.Source
		if reportSource != "" {
			source = reportSource
		}

		ctx := cmd.Context()
		src, err := ingest.NewSource(ctx, ingest.Kind(source), args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		t, err := src.Read(ctx)
		if err != nil {
			return err
		}

		report, err := validator.New(logger).GenerateQualityReport(t)
		if err != nil {
			return err
		}

		if reportOut != "" {
			return export.ExportReport(reportOut, report)
		}
		return export.WriteReportJSON(os.Stdout, report)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportSource, "source", "", "input source: csv, postgres, or snowflake")
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "path for the report (.json, .yaml)")
	rootCmd.AddCommand(reportCmd)
}
