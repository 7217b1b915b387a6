// pkg/cleaner/missing.go
package cleaner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// MissingOptions controls missing-value resolution
type MissingOptions struct {
	Strategy Strategy
	// Columns lists the target columns; empty means all
	Columns []string
	// Threshold is the missing fraction above which the auto strategy
	// drops a column; zero means DefaultMissingThreshold
	Threshold float64
	// FillValue is the literal used by StrategyFillValue
	FillValue interface{}
}

// MissingResult describes the effect of HandleMissingValues
type MissingResult struct {
	ColumnsDropped []string
	RowsDropped    int
	CellsFilled    int
}

// HandleMissingValues resolves missing cells in the target columns.
// Whatever the strategy, the returned table has zero missing cells in
// the surviving target columns; the operation fails whole rather than
// fill partially.
func (c *Cleaner) HandleMissingValues(t table.Table, opts MissingOptions) (table.Table, MissingResult, error) {
	targets, err := resolveColumns(t, opts.Columns)
	if err != nil {
		return t, MissingResult{}, err
	}

	switch opts.Strategy {
	case StrategyAuto:
		return c.missingAuto(t, targets, opts.Threshold)
	case StrategyDropRows:
		return c.missingDropRows(t, targets)
	case StrategyFillValue:
		return c.missingFill(t, targets, opts.FillValue)
	default:
		return t, MissingResult{}, &model.ConfigurationError{
			Param:  "strategy",
			Reason: fmt.Sprintf("unsupported value %d", opts.Strategy),
		}
	}
}

// missingAuto drops target columns whose missing fraction exceeds the
// threshold, then imputes the remaining targets per column type.
// Columns are dropped before any statistic is computed, so dropped
// columns never contribute to a median or mode.
func (c *Cleaner) missingAuto(t table.Table, targets []string, threshold float64) (table.Table, MissingResult, error) {
	if threshold == 0 {
		threshold = DefaultMissingThreshold
	}
	if threshold < 0 || threshold > 1 {
		return t, MissingResult{}, &model.ConfigurationError{
			Param:  "threshold",
			Reason: fmt.Sprintf("missing threshold %v outside [0,1]", threshold),
		}
	}

	var result MissingResult
	survivors := make([]string, 0, len(targets))
	for _, name := range targets {
		col, _ := t.Column(name)
		if frac := col.MissingFraction(); frac > threshold {
			result.ColumnsDropped = append(result.ColumnsDropped, name)
			c.logger.Info("Dropping column over missing threshold",
				zap.String("column", name),
				zap.Float64("missing_fraction", frac),
				zap.Float64("threshold", threshold))
		} else {
			survivors = append(survivors, name)
		}
	}

	out := t
	if len(result.ColumnsDropped) > 0 {
		out = out.DropColumns(result.ColumnsDropped...)
	}

	for _, name := range survivors {
		col, _ := out.Column(name)
		if col.MissingCount() == 0 {
			continue
		}
		filledCol, filled, err := imputeColumn(col)
		if err != nil {
			return t, MissingResult{}, err
		}
		out, err = out.WithColumn(name, filledCol)
		if err != nil {
			return t, MissingResult{}, fmt.Errorf("failed to replace column %q: %w", name, err)
		}
		result.CellsFilled += filled
		c.logger.Debug("Imputed missing cells",
			zap.String("column", name),
			zap.Int("filled", filled))
	}

	c.logger.Info("Resolved missing values",
		zap.Int("columns_dropped", len(result.ColumnsDropped)),
		zap.Int("cells_filled", result.CellsFilled))
	return out, result, nil
}

// imputeColumn fills every missing cell of col with a type-appropriate
// replacement: median for numeric, mode for text and bool, nearest
// present value by row distance for temporal.
func imputeColumn(col table.Column) (table.Column, int, error) {
	n := col.Len()
	values := make([]interface{}, n)
	for i := 0; i < n; i++ {
		values[i] = col.Value(i)
	}
	filled := 0

	switch col.Type {
	case table.Numeric:
		present := col.Floats()
		if len(present) == 0 {
			return table.Column{}, 0, &model.CleaningError{
				Op:     "handle_missing_values",
				Column: col.Name,
				Reason: "median undefined: no present values",
			}
		}
		med := median(present)
		for i := range values {
			if values[i] == nil {
				values[i] = med
				filled++
			}
		}

	case table.Text:
		// Mode of present values, ties broken by first occurrence.
		// An all-missing column falls back to "Unknown".
		mode := "Unknown"
		counts := make(map[string]int)
		best := 0
		for i := 0; i < n; i++ {
			if s, ok := col.Value(i).(string); ok {
				counts[s]++
				if counts[s] > best {
					best = counts[s]
					mode = s
				}
			}
		}
		for i := range values {
			if values[i] == nil {
				values[i] = mode
				filled++
			}
		}

	case table.Bool:
		trues, falses := 0, 0
		for i := 0; i < n; i++ {
			if b, ok := col.Value(i).(bool); ok {
				if b {
					trues++
				} else {
					falses++
				}
			}
		}
		if trues+falses == 0 {
			return table.Column{}, 0, &model.CleaningError{
				Op:     "handle_missing_values",
				Column: col.Name,
				Reason: "mode undefined: no present values",
			}
		}
		mode := trues > falses
		for i := range values {
			if values[i] == nil {
				values[i] = mode
				filled++
			}
		}

	case table.Temporal:
		// Nearest present value by row distance, earlier row on ties.
		presentIdx := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if values[i] != nil {
				presentIdx = append(presentIdx, i)
			}
		}
		if len(presentIdx) == 0 {
			return table.Column{}, 0, &model.CleaningError{
				Op:     "handle_missing_values",
				Column: col.Name,
				Reason: "no present values to impute from",
			}
		}
		for i := range values {
			if values[i] != nil {
				continue
			}
			nearest := presentIdx[0]
			for _, p := range presentIdx {
				if abs(p-i) < abs(nearest-i) {
					nearest = p
				}
			}
			values[i] = col.Value(nearest)
			filled++
		}

	default:
		return table.Column{}, 0, &model.CleaningError{
			Op:     "handle_missing_values",
			Column: col.Name,
			Reason: fmt.Sprintf("no imputation for dtype %s", col.Type),
		}
	}

	out, err := table.NewColumn(col.Name, col.Type, values)
	if err != nil {
		return table.Column{}, 0, fmt.Errorf("failed to rebuild column %q: %w", col.Name, err)
	}
	return out, filled, nil
}

// missingDropRows removes every row that has a missing cell in any
// target column.
func (c *Cleaner) missingDropRows(t table.Table, targets []string) (table.Table, MissingResult, error) {
	kept := make([]int, 0, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		complete := true
		for _, name := range targets {
			if v, _ := t.Value(r, name); v == nil {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, r)
		}
	}

	dropped := t.NumRows() - len(kept)
	if dropped > 0 {
		c.logger.Info("Dropped rows with missing values",
			zap.Int("dropped", dropped),
			zap.Int("remaining", len(kept)))
	}
	return t.SelectRows(kept), MissingResult{RowsDropped: dropped}, nil
}

// missingFill replaces missing target cells with a caller-supplied
// literal, coerced to each column's dtype.
func (c *Cleaner) missingFill(t table.Table, targets []string, fill interface{}) (table.Table, MissingResult, error) {
	if fill == nil {
		return t, MissingResult{}, &model.ConfigurationError{
			Param:  "fill_value",
			Reason: "required for the fill_value strategy",
		}
	}

	out := t
	filled := 0
	for _, name := range targets {
		col, _ := out.Column(name)
		if col.MissingCount() == 0 {
			continue
		}
		cell, err := table.Coerce(fill, col.Type)
		if err != nil {
			return t, MissingResult{}, &model.ConfigurationError{
				Param:  "fill_value",
				Reason: fmt.Sprintf("cannot coerce %v to %s column %q", fill, col.Type, name),
			}
		}
		values := make([]interface{}, col.Len())
		for i := 0; i < col.Len(); i++ {
			if v := col.Value(i); v != nil {
				values[i] = v
			} else {
				values[i] = cell
				filled++
			}
		}
		newCol, err := table.NewColumn(name, col.Type, values)
		if err != nil {
			return t, MissingResult{}, fmt.Errorf("failed to rebuild column %q: %w", name, err)
		}
		out, err = out.WithColumn(name, newCol)
		if err != nil {
			return t, MissingResult{}, fmt.Errorf("failed to replace column %q: %w", name, err)
		}
	}

	c.logger.Info("Filled missing values with literal",
		zap.Int("cells_filled", filled))
	return out, MissingResult{CellsFilled: filled}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
