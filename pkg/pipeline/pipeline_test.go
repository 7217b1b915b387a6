// pkg/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/dataqual/dataqual/pkg/cleaner"
	"github.com/dataqual/dataqual/pkg/export"
	"github.com/dataqual/dataqual/pkg/ingest"
	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// messyTable carries one of every issue the default run fixes:
// unruly column names, a duplicate row, a missing cell, padded text,
// unparsed dates, and an extreme amount.
func messyTable(t *testing.T) table.Table {
	t.Helper()
	name, err := table.NewColumn(" Full Name ", table.Text, []interface{}{
		"  alice  ", "bob", "bob", "carol", "dave", nil,
	})
	assert.NilError(t, err)
	amount, err := table.NewColumn("Purchase-Amount", table.Numeric, []interface{}{
		10.0, 11.0, 11.0, 12.0, 13.0, 10000.0,
	})
	assert.NilError(t, err)
	signup, err := table.NewColumn("Signup Date", table.Text, []interface{}{
		"2023-01-02", "03/04/2023", "03/04/2023", "2023-01-04", "2023-01-05", "2023-01-06",
	})
	assert.NilError(t, err)
	out, err := table.New(name, amount, signup)
	assert.NilError(t, err)
	return out
}

func TestRunAppliesEveryStep(t *testing.T) {
	opts := DefaultOptions()
	opts.DateColumns = []string{"signup_date"}
	opts.ParseDates = true

	result, err := New(opts, nil).Run(context.Background(), messyTable(t))
	assert.NilError(t, err)

	out := result.Table
	assert.DeepEqual(t, out.ColumnNames(), []string{"full_name", "purchase_amount", "signup_date"})

	// one duplicate row and one outlier row are gone
	assert.Equal(t, out.NumRows(), 4)
	assert.Equal(t, out.MissingCells(), 0)

	v, _ := out.Value(0, "full_name")
	assert.Equal(t, v, "alice")

	c, _ := out.Column("signup_date")
	assert.Equal(t, c.Type, table.Temporal)

	assert.Assert(t, result.RunID != "")
	assert.Equal(t, result.Report.TotalRows, 4)
	assert.Equal(t, result.Report.DuplicateRows, 0)
}

func TestRunRecordsStepMetrics(t *testing.T) {
	opts := DefaultOptions()
	result, err := New(opts, nil).Run(context.Background(), messyTable(t))
	assert.NilError(t, err)

	m := result.Metrics
	assert.Equal(t, m.RunID, result.RunID)
	assert.Equal(t, m.RowsIn, 6)
	assert.Equal(t, m.RowsOut, result.Table.NumRows())
	assert.Assert(t, len(m.Steps) >= 4)
	for _, s := range m.Steps {
		assert.Assert(t, !s.EndTime.IsZero(), "step %s never finished", s.Name)
		assert.Equal(t, s.Err, "")
	}

	assert.Assert(t, m.Duration() > 0)
	assert.Equal(t, m.Duration(), m.EndTime.Sub(m.StartTime))

	summary, err := m.Summary()
	assert.NilError(t, err)
	assert.Assert(t, summary != "")
}

func TestRunValidatesRequiredColumns(t *testing.T) {
	opts := DefaultOptions()
	opts.RequiredColumns = []string{" Full Name ", "absent_column"}

	_, err := New(opts, nil).Run(context.Background(), messyTable(t))
	var valErr *model.DataValidationError
	assert.Assert(t, errors.As(err, &valErr))
	assert.DeepEqual(t, valErr.MissingColumns, []string{"absent_column"})
}

func TestRunLeavesInputUntouched(t *testing.T) {
	in := messyTable(t)
	_, err := New(DefaultOptions(), nil).Run(context.Background(), in)
	assert.NilError(t, err)

	assert.Equal(t, in.NumRows(), 6)
	v, _ := in.Value(0, " Full Name ")
	assert.Equal(t, v, "  alice  ")
}

func TestRunWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputPath = filepath.Join(dir, "clean.csv")
	opts.OutputFormat = export.FormatCSV
	opts.ReportPath = filepath.Join(dir, "report.json")

	_, err := New(opts, nil).Run(context.Background(), messyTable(t))
	assert.NilError(t, err)

	_, err = os.Stat(opts.OutputPath)
	assert.NilError(t, err)
	_, err = os.Stat(opts.ReportPath)
	assert.NilError(t, err)
}

func TestRunFromSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	csv := "Name,Amount\nalice,1\nalice,1\nbob,2\n"
	assert.NilError(t, os.WriteFile(path, []byte(csv), 0o644))

	opts := DefaultOptions()
	result, err := New(opts, nil).RunFromSource(context.Background(), ingest.NewCSVSource(path))
	assert.NilError(t, err)
	assert.Equal(t, result.Table.NumRows(), 2)
	assert.DeepEqual(t, result.Table.ColumnNames(), []string{"name", "amount"})
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultOptions(), nil).Run(ctx, messyTable(t))
	assert.Assert(t, errors.Is(err, context.Canceled))
}

func TestRunSelectableSteps(t *testing.T) {
	opts := Options{
		Deduplicate: true,
		DedupKeep:   cleaner.KeepFirst,
	}

	result, err := New(opts, nil).Run(context.Background(), messyTable(t))
	assert.NilError(t, err)

	out := result.Table
	// only deduplication ran: names, gaps and outliers are untouched
	assert.Equal(t, out.NumRows(), 5)
	assert.Assert(t, out.HasColumn(" Full Name "))
	assert.Equal(t, out.MissingCells(), 1)
}
