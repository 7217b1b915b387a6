// pkg/generator/generator_test.go
package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/dataqual/dataqual/pkg/cleaner"
	"github.com/dataqual/dataqual/pkg/table"
)

func TestGenerateSampleDataShape(t *testing.T) {
	tab, err := GenerateSampleData(Options{NumRows: 100}, nil)
	assert.NilError(t, err)
	assert.Equal(t, tab.NumColumns(), 9)
	assert.Equal(t, tab.NumRows(), 100)

	c, _ := tab.Column("customer_id")
	assert.Equal(t, c.Type, table.Numeric)
	c, _ = tab.Column("signup_date")
	assert.Equal(t, c.Type, table.Text)
}

func TestGenerateSampleDataIsReproducible(t *testing.T) {
	opts := Options{NumRows: 50, Seed: 7, Messy: true}
	a, err := GenerateSampleData(opts, nil)
	assert.NilError(t, err)
	b, err := GenerateSampleData(opts, nil)
	assert.NilError(t, err)

	assert.Equal(t, a.NumRows(), b.NumRows())
	cols := a.ColumnNames()
	for r := 0; r < a.NumRows(); r++ {
		assert.Equal(t, a.RowKey(r, cols), b.RowKey(r, cols))
	}
}

func TestGenerateMessyDataCarriesQualityIssues(t *testing.T) {
	tab, err := GenerateSampleData(Options{NumRows: 200, Messy: true}, nil)
	assert.NilError(t, err)

	// appended duplicates grow the table past the base row count
	assert.Equal(t, tab.NumRows(), 210)
	dups, err := cleaner.CountDuplicates(tab, nil)
	assert.NilError(t, err)
	assert.Assert(t, dups > 0)

	assert.Assert(t, tab.MissingCells() > 0)

	// messy column names need standardizing
	assert.Assert(t, tab.HasColumn(" First Name "))
	assert.Assert(t, tab.HasColumn("Purchase-Amount"))

	// padded text cells exist somewhere
	padded := false
	c, _ := tab.Column("Status")
	for i := 0; i < c.Len(); i++ {
		if s, ok := c.Value(i).(string); ok && strings.HasPrefix(s, " ") {
			padded = true
			break
		}
	}
	assert.Assert(t, padded)
}

func TestGenerateCleanDataHasNoIssues(t *testing.T) {
	tab, err := GenerateSampleData(Options{NumRows: 100, Messy: false}, nil)
	assert.NilError(t, err)

	assert.Equal(t, tab.NumRows(), 100)
	assert.Equal(t, tab.MissingCells(), 0)
	assert.Assert(t, tab.HasColumn("first_name"))

	// customer ids are unique, so no whole rows repeat
	dups, err := cleaner.CountDuplicates(tab, nil)
	assert.NilError(t, err)
	assert.Equal(t, dups, 0)
}

func TestGenerateSampleDataRejectsBadRowCount(t *testing.T) {
	_, err := GenerateSampleData(Options{NumRows: 0}, nil)
	assert.ErrorContains(t, err, "must be positive")
}

func TestGenerateSampleCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	tab, err := GenerateSampleCSV(path, Options{NumRows: 20, Messy: true}, nil)
	assert.NilError(t, err)

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	lines := strings.Count(string(data), "\n")
	assert.Equal(t, lines, tab.NumRows()+1)
}
