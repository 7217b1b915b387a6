// pkg/cleaner/outliers.go
package cleaner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// OutlierOptions controls outlier removal
type OutlierOptions struct {
	// Columns lists the numeric columns to inspect; empty means all
	// numeric columns
	Columns []string
	// Method selects the detection algorithm
	Method Method
	// Threshold is the IQR multiplier or z-score cutoff; zero means
	// the method's default (1.5 for IQR, 3.0 for z-score)
	Threshold float64
}

// OutlierResult describes the effect of RemoveOutliers
type OutlierResult struct {
	RowsRemoved int
	// PerColumn counts the flagged cells per column; a removed row may
	// be flagged by more than one column
	PerColumn map[string]int
}

// RemoveOutliers removes every row whose value in any target column
// falls outside that column's bounds. Bounds are computed per column
// over the present values of the input table, so the order of target
// columns does not affect the outcome. Missing cells are never flagged.
func (c *Cleaner) RemoveOutliers(t table.Table, opts OutlierOptions) (table.Table, OutlierResult, error) {
	if opts.Method != MethodIQR && opts.Method != MethodZScore {
		return t, OutlierResult{}, &model.ConfigurationError{
			Param:  "method",
			Reason: fmt.Sprintf("unsupported value %d", opts.Method),
		}
	}
	threshold := opts.Threshold
	if threshold == 0 {
		if opts.Method == MethodIQR {
			threshold = DefaultIQRThreshold
		} else {
			threshold = DefaultZScoreThreshold
		}
	}
	if threshold < 0 {
		return t, OutlierResult{}, &model.ConfigurationError{
			Param:  "threshold",
			Reason: fmt.Sprintf("must be positive, got %v", threshold),
		}
	}

	var targets []string
	if len(opts.Columns) == 0 {
		for _, col := range t.Columns() {
			if col.Type == table.Numeric {
				targets = append(targets, col.Name)
			}
		}
	} else {
		for _, name := range opts.Columns {
			col, ok := t.Column(name)
			if !ok {
				return t, OutlierResult{}, &model.ConfigurationError{
					Param:  "columns",
					Reason: fmt.Sprintf("unknown column %q", name),
				}
			}
			if col.Type != table.Numeric {
				return t, OutlierResult{}, &model.ConfigurationError{
					Param:  "columns",
					Reason: fmt.Sprintf("column %q is %s, not numeric", name, col.Type),
				}
			}
			targets = append(targets, name)
		}
	}

	result := OutlierResult{PerColumn: make(map[string]int, len(targets))}
	flagged := make([]bool, t.NumRows())
	for _, name := range targets {
		col, _ := t.Column(name)
		lower, upper, ok := columnBounds(col, opts.Method, threshold)
		result.PerColumn[name] = 0
		if !ok {
			// Degenerate column (nothing present, or zero variance
			// under z-score): every finite value is in bounds.
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			v := col.Value(r)
			f, present := v.(float64)
			if !present {
				continue
			}
			if f < lower || f > upper {
				flagged[r] = true
				result.PerColumn[name]++
			}
		}
		if n := result.PerColumn[name]; n > 0 {
			c.logger.Debug("Flagged outliers",
				zap.String("column", name),
				zap.Int("flagged", n),
				zap.Float64("lower", lower),
				zap.Float64("upper", upper))
		}
	}

	kept := make([]int, 0, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		if !flagged[r] {
			kept = append(kept, r)
		}
	}
	result.RowsRemoved = t.NumRows() - len(kept)

	if result.RowsRemoved > 0 {
		c.logger.Info("Removed outlier rows",
			zap.Int("removed", result.RowsRemoved),
			zap.Int("remaining", len(kept)))
	}
	return t.SelectRows(kept), result, nil
}

// columnBounds computes the inclusive [lower, upper] interval of
// non-outlying values. ok is false when the column cannot flag
// anything: no present values, or stddev == 0 under z-score.
func columnBounds(col table.Column, method Method, threshold float64) (lower, upper float64, ok bool) {
	xs := col.Floats()
	if len(xs) == 0 {
		return 0, 0, false
	}

	switch method {
	case MethodIQR:
		q1 := quantile(xs, 0.25)
		q3 := quantile(xs, 0.75)
		iqr := q3 - q1
		return q1 - threshold*iqr, q3 + threshold*iqr, true
	case MethodZScore:
		m, sd := meanStdDev(xs)
		if sd == 0 {
			return 0, 0, false
		}
		return m - threshold*sd, m + threshold*sd, true
	default:
		return 0, 0, false
	}
}
