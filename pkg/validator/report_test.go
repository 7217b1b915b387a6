// pkg/validator/report_test.go
package validator

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/dataqual/dataqual/pkg/table"
)

func TestGenerateQualityReport(t *testing.T) {
	in := tab(t,
		col(t, "name", table.Text, "a", "b", "a", "a"),
		col(t, "age", table.Numeric, 10.0, 20.0, 10.0, nil),
	)

	report, err := New(nil).GenerateQualityReport(in)
	assert.NilError(t, err)

	assert.Assert(t, report.ReportID != "")
	assert.Equal(t, report.TotalRows, 4)
	assert.Equal(t, report.TotalColumns, 2)
	// rows 0 and 2 coincide on every column; row 3 differs by its gap
	assert.Equal(t, report.DuplicateRows, 1)
	assert.Equal(t, report.MissingCells, 1)
	assert.Equal(t, report.MissingFraction, 0.125)
	assert.Assert(t, !report.GeneratedAt.IsZero())

	name := report.Columns["name"]
	assert.Equal(t, name.DType, "text")
	assert.Equal(t, name.UniqueCount, 2)
	assert.Assert(t, name.Mean == nil)

	age := report.Columns["age"]
	assert.Equal(t, age.MissingCount, 1)
	assert.Equal(t, age.MissingFraction, 0.25)
	assert.Equal(t, age.UniqueCount, 2)
	assert.Equal(t, *age.Mean, 40.0/3.0)
	assert.Equal(t, *age.Median, 10.0)
	assert.Equal(t, *age.Min, 10.0)
	assert.Equal(t, *age.Max, 20.0)
	assert.Assert(t, age.StdDev != nil)
}

func TestGenerateQualityReportSingleValueOmitsStdDev(t *testing.T) {
	in := tab(t,
		col(t, "x", table.Numeric, 7.0, nil),
	)

	report, err := New(nil).GenerateQualityReport(in)
	assert.NilError(t, err)

	x := report.Columns["x"]
	assert.Equal(t, *x.Mean, 7.0)
	assert.Assert(t, x.StdDev == nil)
}

func TestGenerateQualityReportEmptyTable(t *testing.T) {
	in := tab(t,
		col(t, "x", table.Numeric),
		col(t, "y", table.Text),
	)

	report, err := New(nil).GenerateQualityReport(in)
	assert.NilError(t, err)
	assert.Equal(t, report.TotalRows, 0)
	assert.Equal(t, report.DuplicateRows, 0)
	assert.Equal(t, report.MissingFraction, 0.0)
	assert.Assert(t, report.Columns["x"].Mean == nil)
}

func TestGenerateQualityReportIDsAreUnique(t *testing.T) {
	in := tab(t, col(t, "x", table.Numeric, 1.0))

	v := New(nil)
	a, err := v.GenerateQualityReport(in)
	assert.NilError(t, err)
	b, err := v.GenerateQualityReport(in)
	assert.NilError(t, err)
	assert.Assert(t, a.ReportID != b.ReportID)
}
