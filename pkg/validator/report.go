// pkg/validator/report.go
package validator

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dataqual/dataqual/pkg/cleaner"
	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// GenerateQualityReport computes the quality report for a table:
// totals, duplicate count (same equality rule as duplicate removal,
// over all columns), overall missing fraction, and per-column
// statistics. Statistics are recomputed fresh on every call; a
// zero-row table yields absent statistics rather than an error.
func (v *Validator) GenerateQualityReport(t table.Table) (*model.QualityReport, error) {
	duplicates, err := cleaner.CountDuplicates(t, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count duplicate rows: %w", err)
	}

	report := &model.QualityReport{
		ReportID:      uuid.New().String(),
		TotalRows:     t.NumRows(),
		TotalColumns:  t.NumColumns(),
		DuplicateRows: duplicates,
		MissingCells:  t.MissingCells(),
		Columns:       make(map[string]model.ColumnStats, t.NumColumns()),
		GeneratedAt:   time.Now().UTC(),
	}
	if cells := t.NumRows() * t.NumColumns(); cells > 0 {
		report.MissingFraction = float64(report.MissingCells) / float64(cells)
	}

	for _, col := range t.Columns() {
		report.Columns[col.Name] = columnStats(col)
	}

	v.logger.Info("Generated data quality report",
		zap.String("report_id", report.ReportID),
		zap.Int("rows", report.TotalRows),
		zap.Int("columns", report.TotalColumns),
		zap.Int("duplicate_rows", report.DuplicateRows),
		zap.Float64("missing_fraction", report.MissingFraction))
	return report, nil
}

// columnStats derives the per-column record. Numeric columns with at
// least one present value get the full descriptive set; everything
// else gets counts and uniques only.
func columnStats(col table.Column) model.ColumnStats {
	stats := model.ColumnStats{
		DType:           col.Type.String(),
		MissingCount:    col.MissingCount(),
		MissingFraction: col.MissingFraction(),
		UniqueCount:     uniqueCount(col),
	}

	if col.Type != table.Numeric {
		return stats
	}
	xs := col.Floats()
	if len(xs) == 0 {
		return stats
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	stats.Mean = model.Float(stat.Mean(xs, nil))
	stats.Median = model.Float(medianSorted(sorted))
	stats.Min = model.Float(floats.Min(sorted))
	stats.Max = model.Float(floats.Max(sorted))
	if len(xs) > 1 {
		stats.StdDev = model.Float(stat.StdDev(xs, nil))
	}
	return stats
}

// uniqueCount counts distinct present values
func uniqueCount(col table.Column) int {
	present := col.Present()
	seen := make(map[interface{}]bool, len(present))
	for _, v := range present {
		if ts, ok := v.(time.Time); ok {
			v = ts.UnixNano()
		}
		seen[v] = true
	}
	return len(seen)
}

// medianSorted returns the midpoint of an already-sorted non-empty slice
func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sortedKeys returns map keys in deterministic order, so reports and
// log output are stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
