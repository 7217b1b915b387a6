// pkg/pipeline/pipeline.go

// Package pipeline chains the cleaning and validation engines into a
// single configurable run over one dataset.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/cleaner"
	"github.com/dataqual/dataqual/pkg/export"
	"github.com/dataqual/dataqual/pkg/ingest"
	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
	"github.com/dataqual/dataqual/pkg/validator"
)

// Options controls which steps a run performs and how
type Options struct {
	StandardizeNames bool
	Deduplicate      bool
	DedupSubset      []string
	DedupKeep        cleaner.Keep

	HandleMissing    bool
	MissingStrategy  cleaner.Strategy
	MissingThreshold float64
	FillValue        interface{}

	CleanText   bool
	TextColumns []string

	ParseDates  bool
	DateColumns []string
	DateFormats []string

	RemoveOutliers   bool
	OutlierMethod    cleaner.Method
	OutlierColumns   []string
	OutlierThreshold float64

	RequiredColumns []string

	OutputPath   string
	OutputFormat export.Format
	ReportPath   string
}

// DefaultOptions returns a run that performs every cleaning step with
// engine defaults and writes nothing to disk.
func DefaultOptions() Options {
	return Options{
		StandardizeNames: true,
		Deduplicate:      true,
		DedupKeep:        cleaner.KeepFirst,
		HandleMissing:    true,
		MissingStrategy:  cleaner.StrategyAuto,
		CleanText:        true,
		RemoveOutliers:   true,
		OutlierMethod:    cleaner.MethodIQR,
		OutputFormat:     export.FormatCSV,
	}
}

// Result carries everything a completed run produced
type Result struct {
	RunID   string
	Table   table.Table
	Report  *model.QualityReport
	Metrics *RunMetrics
}

// Pipeline runs cleaning steps in a fixed order over one table
type Pipeline struct {
	cleaner   *cleaner.Cleaner
	validator *validator.Validator
	logger    *zap.Logger
	opts      Options
}

// New creates a pipeline with the given options. A nil logger
// disables logging.
func New(opts Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cleaner:   cleaner.New(logger),
		validator: validator.New(logger),
		logger:    logger,
		opts:      opts,
	}
}

// RunFromSource reads a table from the source, then runs the pipeline
// over it.
func (p *Pipeline) RunFromSource(ctx context.Context, src ingest.Source) (*Result, error) {
	t, err := src.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return p.Run(ctx, t)
}

// Run executes the configured steps over t. The input table is never
// mutated. Steps run in a fixed order: schema validation, column name
// standardization, deduplication, missing value handling, text
// cleanup, date parsing, outlier removal, then the quality report.
func (p *Pipeline) Run(ctx context.Context, t table.Table) (*Result, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))
	metrics := NewRunMetrics(runID, logger)
	rowsIn := t.NumRows()

	logger.Info("Run started",
		zap.Int("rows", rowsIn),
		zap.Int("columns", t.NumColumns()))

	if len(p.opts.RequiredColumns) > 0 {
		if err := p.validator.ValidateSchema(t, p.opts.RequiredColumns); err != nil {
			return nil, err
		}
	}

	if p.opts.StandardizeNames {
		idx := metrics.StartStep("standardize_names", t.NumRows())
		cleaned, res, err := p.cleaner.StandardizeColumnNames(t)
		metrics.EndStep(idx, t.NumRows(), len(res.Renamed), err)
		if err != nil {
			return nil, fmt.Errorf("failed to standardize column names: %w", err)
		}
		t = cleaned
	}

	if p.opts.Deduplicate {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := metrics.StartStep("deduplicate", t.NumRows())
		cleaned, res, err := p.cleaner.RemoveDuplicates(t, cleaner.DedupOptions{
			Subset: p.opts.DedupSubset,
			Keep:   p.opts.DedupKeep,
		})
		rows := t.NumRows()
		if err == nil {
			rows = cleaned.NumRows()
		}
		metrics.EndStep(idx, rows, res.RowsRemoved, err)
		if err != nil {
			return nil, fmt.Errorf("failed to deduplicate: %w", err)
		}
		t = cleaned
	}

	if p.opts.HandleMissing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := metrics.StartStep("handle_missing", t.NumRows())
		cleaned, res, err := p.cleaner.HandleMissingValues(t, cleaner.MissingOptions{
			Strategy:  p.opts.MissingStrategy,
			Threshold: p.opts.MissingThreshold,
			FillValue: p.opts.FillValue,
		})
		rows := t.NumRows()
		touched := 0
		if err == nil {
			rows = cleaned.NumRows()
			touched = res.CellsFilled
		}
		metrics.EndStep(idx, rows, touched, err)
		if err != nil {
			return nil, fmt.Errorf("failed to handle missing values: %w", err)
		}
		t = cleaned
	}

	if p.opts.CleanText {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := metrics.StartStep("clean_text", t.NumRows())
		cleaned, res, err := p.cleaner.CleanTextColumns(t, p.opts.TextColumns)
		metrics.EndStep(idx, t.NumRows(), res.CellsChanged, err)
		if err != nil {
			return nil, fmt.Errorf("failed to clean text columns: %w", err)
		}
		t = cleaned
	}

	if p.opts.ParseDates && len(p.opts.DateColumns) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := metrics.StartStep("parse_dates", t.NumRows())
		cleaned, res, err := p.cleaner.ParseDates(t, p.opts.DateColumns, p.opts.DateFormats)
		unparsable := 0
		for _, n := range res.Unparsable {
			unparsable += n
		}
		metrics.EndStep(idx, t.NumRows(), unparsable, err)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dates: %w", err)
		}
		t = cleaned
	}

	if p.opts.RemoveOutliers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := metrics.StartStep("remove_outliers", t.NumRows())
		cleaned, res, err := p.cleaner.RemoveOutliers(t, cleaner.OutlierOptions{
			Method:    p.opts.OutlierMethod,
			Columns:   p.opts.OutlierColumns,
			Threshold: p.opts.OutlierThreshold,
		})
		rows := t.NumRows()
		if err == nil {
			rows = cleaned.NumRows()
		}
		metrics.EndStep(idx, rows, res.RowsRemoved, err)
		if err != nil {
			return nil, fmt.Errorf("failed to remove outliers: %w", err)
		}
		t = cleaned
	}

	report, err := p.validator.GenerateQualityReport(t)
	if err != nil {
		return nil, fmt.Errorf("failed to generate quality report: %w", err)
	}

	if p.opts.OutputPath != "" {
		if err := export.ExportTable(p.opts.OutputPath, t, p.opts.OutputFormat); err != nil {
			return nil, err
		}
	}
	if p.opts.ReportPath != "" {
		if err := export.ExportReport(p.opts.ReportPath, report); err != nil {
			return nil, err
		}
	}

	metrics.Finish(rowsIn, t.NumRows())
	metrics.LogSummary()

	return &Result{
		RunID:   runID,
		Table:   t,
		Report:  report,
		Metrics: metrics,
	}, nil
}
