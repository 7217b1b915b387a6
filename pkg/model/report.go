// pkg/model/report.go
package model

import (
	"time"
)

// ColumnStats holds per-column quality metrics. The descriptive
// statistics are only set for numeric columns with at least one
// present value; otherwise the pointers stay nil and serialize as
// absent rather than zero.
type ColumnStats struct {
	DType           string   `json:"dtype" yaml:"dtype"`
	MissingCount    int      `json:"missing_count" yaml:"missing_count"`
	MissingFraction float64  `json:"missing_fraction" yaml:"missing_fraction"`
	UniqueCount     int      `json:"unique_count" yaml:"unique_count"`
	Mean            *float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Median          *float64 `json:"median,omitempty" yaml:"median,omitempty"`
	StdDev          *float64 `json:"std_dev,omitempty" yaml:"std_dev,omitempty"`
	Min             *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max             *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// QualityReport is the immutable aggregate describing a table's
// completeness, duplication and per-column statistics at a point in
// time. One instance is produced per validation call; it holds no
// reference to the table it was computed from.
type QualityReport struct {
	ReportID        string                 `json:"report_id" yaml:"report_id"`
	TotalRows       int                    `json:"total_rows" yaml:"total_rows"`
	TotalColumns    int                    `json:"total_columns" yaml:"total_columns"`
	DuplicateRows   int                    `json:"duplicate_rows" yaml:"duplicate_rows"`
	MissingCells    int                    `json:"missing_cells" yaml:"missing_cells"`
	MissingFraction float64                `json:"missing_fraction" yaml:"missing_fraction"`
	Columns         map[string]ColumnStats `json:"columns" yaml:"columns"`
	GeneratedAt     time.Time              `json:"generated_at" yaml:"generated_at"`
}

// Float returns a pointer to v, for optional report statistics
func Float(v float64) *float64 {
	return &v
}
