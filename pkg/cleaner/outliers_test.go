// pkg/cleaner/outliers_test.go
package cleaner

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

func TestRemoveOutliersIQR(t *testing.T) {
	in := tab(t,
		col(t, "amount", table.Numeric, 1.0, 2.0, 3.0, 4.0, 100.0),
	)

	out, res, err := New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodIQR})
	assert.NilError(t, err)
	assert.Equal(t, res.RowsRemoved, 1)
	assert.Equal(t, res.PerColumn["amount"], 1)
	assert.DeepEqual(t, floatValues(t, out, "amount"), []float64{1.0, 2.0, 3.0, 4.0})
}

func TestRemoveOutliersZScore(t *testing.T) {
	in := tab(t,
		col(t, "amount", table.Numeric, 10.0, 10.0, 10.0, 10.0, 100.0),
	)

	// the spike sits within 3 standard deviations of this small sample,
	// so the default threshold keeps it
	out, res, err := New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodZScore})
	assert.NilError(t, err)
	assert.Equal(t, res.RowsRemoved, 0)
	assert.Equal(t, out.NumRows(), 5)

	out, res, err = New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodZScore, Threshold: 1.0})
	assert.NilError(t, err)
	assert.Equal(t, res.RowsRemoved, 1)
	assert.Equal(t, out.NumRows(), 4)
}

func TestRemoveOutliersConstantColumnFlagsNothing(t *testing.T) {
	in := tab(t,
		col(t, "amount", table.Numeric, 5.0, 5.0, 5.0),
	)

	out, res, err := New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodZScore})
	assert.NilError(t, err)
	assert.Equal(t, res.RowsRemoved, 0)
	assert.Equal(t, out.NumRows(), 3)
}

func TestRemoveOutliersMissingCellsNeverFlagged(t *testing.T) {
	in := tab(t,
		col(t, "amount", table.Numeric, 1.0, 2.0, 3.0, 4.0, nil, 100.0),
	)

	out, res, err := New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodIQR})
	assert.NilError(t, err)
	assert.Equal(t, res.RowsRemoved, 1)
	// the row with the gap survives
	assert.Equal(t, out.NumRows(), 5)
	c, _ := out.Column("amount")
	assert.Equal(t, c.MissingCount(), 1)
}

func TestRemoveOutliersBoundsComputedOnInput(t *testing.T) {
	// the second column's bounds must come from the original table, not
	// from the table left after the first column's removals
	in := tab(t,
		col(t, "a", table.Numeric, 1.0, 2.0, 3.0, 4.0, 100.0),
		col(t, "b", table.Numeric, 1.0, 2.0, 3.0, 4.0, 5.0),
	)

	forward, resF, err := New(nil).RemoveOutliers(in, OutlierOptions{
		Method:  MethodIQR,
		Columns: []string{"a", "b"},
	})
	assert.NilError(t, err)
	reversed, resR, err := New(nil).RemoveOutliers(in, OutlierOptions{
		Method:  MethodIQR,
		Columns: []string{"b", "a"},
	})
	assert.NilError(t, err)

	assert.Equal(t, resF.RowsRemoved, resR.RowsRemoved)
	assert.Equal(t, forward.NumRows(), reversed.NumRows())
}

func TestRemoveOutliersDefaultsToAllNumericColumns(t *testing.T) {
	in := tab(t,
		col(t, "name", table.Text, "a", "b", "c", "d", "e"),
		col(t, "amount", table.Numeric, 1.0, 2.0, 3.0, 4.0, 100.0),
	)

	out, res, err := New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodIQR})
	assert.NilError(t, err)
	assert.Equal(t, res.RowsRemoved, 1)
	assert.DeepEqual(t, textValues(t, out, "name"), []string{"a", "b", "c", "d"})
}

func TestRemoveOutliersRejectsBadOptions(t *testing.T) {
	in := tab(t,
		col(t, "name", table.Text, "a"),
		col(t, "amount", table.Numeric, 1.0),
	)

	var cfgErr *model.ConfigurationError

	_, _, err := New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodIQR, Threshold: -1})
	assert.Assert(t, errors.As(err, &cfgErr))

	_, _, err = New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodIQR, Columns: []string{"name"}})
	assert.Assert(t, errors.As(err, &cfgErr))

	_, _, err = New(nil).RemoveOutliers(in, OutlierOptions{Method: MethodIQR, Columns: []string{"nope"}})
	assert.Assert(t, errors.As(err, &cfgErr))

	_, _, err = New(nil).RemoveOutliers(in, OutlierOptions{Method: Method(99)})
	assert.Assert(t, errors.As(err, &cfgErr))
}

func TestParseEnumBoundaries(t *testing.T) {
	keep, err := ParseKeep("last")
	assert.NilError(t, err)
	assert.Equal(t, keep, KeepLast)
	_, err = ParseKeep("middle")
	var cfgErr *model.ConfigurationError
	assert.Assert(t, errors.As(err, &cfgErr))

	strategy, err := ParseStrategy("drop_rows")
	assert.NilError(t, err)
	assert.Equal(t, strategy, StrategyDropRows)
	_, err = ParseStrategy("interpolate")
	assert.Assert(t, errors.As(err, &cfgErr))

	method, err := ParseMethod("zscore")
	assert.NilError(t, err)
	assert.Equal(t, method, MethodZScore)
	_, err = ParseMethod("mad")
	assert.Assert(t, errors.As(err, &cfgErr))
}
