// pkg/validator/validator.go
package validator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// Validator runs read-only quality checks over a table. Schema
// presence is fail-fast; every other check returns a structured
// verdict for the caller to interpret.
type Validator struct {
	logger *zap.Logger
}

// New creates a Validator. A nil logger disables logging.
func New(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// ValidateSchema verifies that every expected column is present.
// Missing columns raise a DataValidationError listing them; this check
// never degrades to a silent false.
func (v *Validator) ValidateSchema(t table.Table, expected []string) error {
	var missing []string
	for _, name := range expected {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		v.logger.Error("Schema validation failed",
			zap.Strings("missing_columns", missing))
		return &model.DataValidationError{
			Check:          "schema",
			MissingColumns: missing,
		}
	}
	v.logger.Debug("Schema validation passed",
		zap.Int("columns", len(expected)))
	return nil
}

// TypeMismatch describes one column whose dtype differs from the
// expectation.
type TypeMismatch struct {
	Column   string `json:"column"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// TypeReport is the verdict of ValidateDataTypes
type TypeReport struct {
	Passed     bool           `json:"passed"`
	Mismatches []TypeMismatch `json:"mismatches,omitempty"`
}

// ValidateDataTypes compares each named column's dtype against the
// expectation. Unknown columns count as mismatches with actual
// "absent"; nothing is raised.
func (v *Validator) ValidateDataTypes(t table.Table, expected map[string]table.DType) TypeReport {
	report := TypeReport{Passed: true}
	for _, name := range sortedKeys(expected) {
		want := expected[name]
		col, ok := t.Column(name)
		if !ok {
			report.Mismatches = append(report.Mismatches, TypeMismatch{
				Column: name, Expected: want.String(), Actual: "absent",
			})
			continue
		}
		if col.Type != want {
			report.Mismatches = append(report.Mismatches, TypeMismatch{
				Column: name, Expected: want.String(), Actual: col.Type.String(),
			})
		}
	}
	report.Passed = len(report.Mismatches) == 0
	v.logger.Info("Data type validation finished",
		zap.Bool("passed", report.Passed),
		zap.Int("mismatches", len(report.Mismatches)))
	return report
}

// Range bounds the acceptable values of a numeric column, inclusive
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RangeViolations counts the present values of one column outside its
// range.
type RangeViolations struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`
}

// RangeReport is the verdict of ValidateRanges
type RangeReport struct {
	Passed     bool              `json:"passed"`
	Violations []RangeViolations `json:"violations,omitempty"`
}

// ValidateRanges counts, per column, the present values outside the
// given inclusive bounds. Out-of-range values are surfaced, not
// raised; a non-numeric or absent column is a ConfigurationError.
func (v *Validator) ValidateRanges(t table.Table, bounds map[string]Range) (RangeReport, error) {
	report := RangeReport{Passed: true}
	for _, name := range sortedKeys(bounds) {
		col, ok := t.Column(name)
		if !ok {
			return RangeReport{}, &model.ConfigurationError{
				Param:  "bounds",
				Reason: fmt.Sprintf("unknown column %q", name),
			}
		}
		if col.Type != table.Numeric {
			return RangeReport{}, &model.ConfigurationError{
				Param:  "bounds",
				Reason: fmt.Sprintf("column %q is %s, not numeric", name, col.Type),
			}
		}

		r := bounds[name]
		present, outside := 0, 0
		for i := 0; i < col.Len(); i++ {
			f, ok := col.Value(i).(float64)
			if !ok {
				continue
			}
			present++
			if f < r.Min || f > r.Max {
				outside++
			}
		}
		if outside > 0 {
			violation := RangeViolations{Column: name, Count: outside}
			if present > 0 {
				violation.Fraction = float64(outside) / float64(present)
			}
			report.Violations = append(report.Violations, violation)
		}
	}
	report.Passed = len(report.Violations) == 0
	v.logger.Info("Range validation finished",
		zap.Bool("passed", report.Passed),
		zap.Int("columns_with_violations", len(report.Violations)))
	return report, nil
}

// ColumnCompleteness is one column's verdict in a CompletenessReport
type ColumnCompleteness struct {
	Column          string  `json:"column"`
	MissingFraction float64 `json:"missing_fraction"`
	Passed          bool    `json:"passed"`
}

// CompletenessReport is the verdict of ValidateCompleteness
type CompletenessReport struct {
	Passed          bool                 `json:"passed"`
	OverallFraction float64              `json:"overall_fraction"`
	Columns         []ColumnCompleteness `json:"columns"`
}

// ValidateCompleteness compares each target column's missing fraction
// (all columns when none are named) against maxMissingFraction, along
// with the table-wide fraction.
func (v *Validator) ValidateCompleteness(t table.Table, maxMissingFraction float64, columns []string) (CompletenessReport, error) {
	if maxMissingFraction < 0 || maxMissingFraction > 1 {
		return CompletenessReport{}, &model.ConfigurationError{
			Param:  "max_missing_fraction",
			Reason: fmt.Sprintf("%v outside [0,1]", maxMissingFraction),
		}
	}
	targets := columns
	if len(targets) == 0 {
		targets = t.ColumnNames()
	}

	report := CompletenessReport{Passed: true}
	for _, name := range targets {
		col, ok := t.Column(name)
		if !ok {
			return CompletenessReport{}, &model.ConfigurationError{
				Param:  "columns",
				Reason: fmt.Sprintf("unknown column %q", name),
			}
		}
		frac := col.MissingFraction()
		passed := frac <= maxMissingFraction
		if !passed {
			report.Passed = false
		}
		report.Columns = append(report.Columns, ColumnCompleteness{
			Column:          name,
			MissingFraction: frac,
			Passed:          passed,
		})
	}
	if cells := t.NumRows() * t.NumColumns(); cells > 0 {
		report.OverallFraction = float64(t.MissingCells()) / float64(cells)
	}

	v.logger.Info("Completeness validation finished",
		zap.Bool("passed", report.Passed),
		zap.Float64("overall_missing_fraction", report.OverallFraction))
	return report, nil
}
