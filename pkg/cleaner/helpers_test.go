// pkg/cleaner/helpers_test.go
package cleaner

import (
	"testing"
	"time"

	"github.com/dataqual/dataqual/pkg/table"
)

func col(t *testing.T, name string, dtype table.DType, values ...interface{}) table.Column {
	t.Helper()
	c, err := table.NewColumn(name, dtype, values)
	if err != nil {
		t.Fatalf("failed to build column %s: %v", name, err)
	}
	return c
}

func tab(t *testing.T, cols ...table.Column) table.Table {
	t.Helper()
	out, err := table.New(cols...)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return out
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return ts
}

func textValues(t *testing.T, tbl table.Table, name string) []string {
	t.Helper()
	c, ok := tbl.Column(name)
	if !ok {
		t.Fatalf("column %s not found", name)
	}
	out := make([]string, c.Len())
	for i := 0; i < c.Len(); i++ {
		s, _ := c.Value(i).(string)
		out[i] = s
	}
	return out
}

func floatValues(t *testing.T, tbl table.Table, name string) []float64 {
	t.Helper()
	c, ok := tbl.Column(name)
	if !ok {
		t.Fatalf("column %s not found", name)
	}
	out := make([]float64, c.Len())
	for i := 0; i < c.Len(); i++ {
		f, _ := c.Value(i).(float64)
		out[i] = f
	}
	return out
}
