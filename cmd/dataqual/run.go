// cmd/dataqual/run.go

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dataqual/dataqual/pkg/cleaner"
	"github.com/dataqual/dataqual/pkg/config"
	"github.com/dataqual/dataqual/pkg/export"
	"github.com/dataqual/dataqual/pkg/ingest"
	"github.com/dataqual/dataqual/pkg/pipeline"
)

var (
	runSource  string
	runOutput  string
	runReport  string
	runMetrics string
)

var runCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Run the cleaning pipeline over a dataset",
	Long: `Run reads a dataset, applies the configured cleaning steps, writes
the cleaned table and quality report, and prints a run summary.

The input argument is a CSV path for the csv source, or a SQL query
for the postgres and snowflake sources (connection settings come from
the environment).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			runOpts.Input = args[0]
		}
		if runSource != "" {
			runOpts.Source = runSource
		}
		if runOutput != "" {
			runOpts.Output = runOutput
		}
		if runReport != "" {
			runOpts.Report = runReport
		}
		if runOpts.Input == "" {
			return fmt.Errorf("no input given: pass an argument or set input in the config")
		}

		opts, err := pipelineOptions(runOpts)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		src, err := ingest.NewSource(ctx, ingest.Kind(runOpts.Source), runOpts.Input)
		if err != nil {
			return err
		}
		defer src.Close()

		p := pipeline.New(opts, logger)
		result, err := p.RunFromSource(ctx, src)
		if err != nil {
			return err
		}

		// Without a report path the report goes to stdout
		if runOpts.Report == "" {
			if err := export.WriteReportJSON(os.Stdout, result.Report); err != nil {
				return err
			}
		}

		if runMetrics != "" {
			summary, err := result.Metrics.Summary()
			if err != nil {
				return err
			}
			if err := os.WriteFile(runMetrics, []byte(summary+"\n"), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", runMetrics, err)
			}
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Run %s finished in %s (%d rows in, %d rows out)\n",
			result.RunID, result.Metrics.Duration().Round(time.Millisecond),
			result.Metrics.RowsIn, result.Metrics.RowsOut)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runSource, "source", "", "input source: csv, postgres, or snowflake")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "path for the cleaned table")
	runCmd.Flags().StringVar(&runReport, "report", "", "path for the quality report (.json, .yaml)")
	runCmd.Flags().StringVar(&runMetrics, "metrics", "", "path for the run metrics JSON")
	rootCmd.AddCommand(runCmd)
}

// pipelineOptions translates file-level run options into engine
// options, validating the enum-valued fields.
func pipelineOptions(ro *config.RunOptions) (pipeline.Options, error) {
	opts := pipeline.Options{
		StandardizeNames: ro.StandardizeNames,
		Deduplicate:      ro.Deduplicate,
		DedupSubset:      ro.DedupSubset,
		HandleMissing:    ro.HandleMissing,
		MissingThreshold: ro.MissingThreshold,
		CleanText:        ro.CleanText,
		TextColumns:      ro.TextColumns,
		ParseDates:       len(ro.DateColumns) > 0,
		DateColumns:      ro.DateColumns,
		DateFormats:      ro.DateFormats,
		RemoveOutliers:   ro.RemoveOutliers,
		OutlierColumns:   ro.OutlierColumns,
		OutlierThreshold: ro.OutlierThreshold,
		RequiredColumns:  ro.RequiredColumns,
		OutputPath:       ro.Output,
		OutputFormat:     export.Format(ro.OutputFormat),
		ReportPath:       ro.Report,
	}

	if ro.Deduplicate {
		keep, err := cleaner.ParseKeep(ro.DedupKeep)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.DedupKeep = keep
	}
	if ro.HandleMissing {
		strategy, err := cleaner.ParseStrategy(ro.MissingStrategy)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.MissingStrategy = strategy
	}
	if ro.RemoveOutliers {
		method, err := cleaner.ParseMethod(ro.OutlierMethod)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.OutlierMethod = method
	}
	return opts, nil
}
