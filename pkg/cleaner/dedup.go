// pkg/cleaner/dedup.go
package cleaner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// DedupOptions controls duplicate removal
type DedupOptions struct {
	// Subset lists the columns compared for equality; empty means all
	Subset []string
	// Keep selects which row of a duplicate group survives
	Keep Keep
}

// DedupResult describes the effect of RemoveDuplicates
type DedupResult struct {
	RowsRemoved int
}

// RemoveDuplicates returns a table without duplicate rows. Rows are
// duplicates when every subset cell compares equal, with missing equal
// to missing. Survivor order is stable.
func (c *Cleaner) RemoveDuplicates(t table.Table, opts DedupOptions) (table.Table, DedupResult, error) {
	if opts.Keep != KeepFirst && opts.Keep != KeepLast {
		return t, DedupResult{}, &model.ConfigurationError{
			Param:  "keep",
			Reason: fmt.Sprintf("unsupported value %d", opts.Keep),
		}
	}

	subset, err := resolveColumns(t, opts.Subset)
	if err != nil {
		return t, DedupResult{}, err
	}
	if len(subset) == 0 {
		return t, DedupResult{}, &model.ConfigurationError{
			Param:  "subset",
			Reason: "no columns to compare",
		}
	}

	// Pick the surviving row index per duplicate group
	chosen := make(map[string]int, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		key := t.RowKey(r, subset)
		if _, seen := chosen[key]; !seen || opts.Keep == KeepLast {
			chosen[key] = r
		}
	}

	kept := make([]int, 0, len(chosen))
	for r := 0; r < t.NumRows(); r++ {
		if chosen[t.RowKey(r, subset)] == r {
			kept = append(kept, r)
		}
	}

	removed := t.NumRows() - len(kept)
	if removed > 0 {
		c.logger.Info("Removed duplicate rows",
			zap.Int("removed", removed),
			zap.Int("remaining", len(kept)))
	} else {
		c.logger.Debug("No duplicate rows found")
	}

	return t.SelectRows(kept), DedupResult{RowsRemoved: removed}, nil
}

// CountDuplicates returns the number of rows that duplicate an earlier
// row over the given subset (all columns when empty). This is the same
// equality rule RemoveDuplicates uses.
func CountDuplicates(t table.Table, subset []string) (int, error) {
	cols, err := resolveColumns(t, subset)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, t.NumRows())
	dups := 0
	for r := 0; r < t.NumRows(); r++ {
		key := t.RowKey(r, cols)
		if seen[key] {
			dups++
		}
		seen[key] = true
	}
	return dups, nil
}

// resolveColumns expands an empty subset to all columns and rejects
// unknown names.
func resolveColumns(t table.Table, subset []string) ([]string, error) {
	if len(subset) == 0 {
		return t.ColumnNames(), nil
	}
	for _, name := range subset {
		if !t.HasColumn(name) {
			return nil, &model.ConfigurationError{
				Param:  "columns",
				Reason: fmt.Sprintf("unknown column %q", name),
			}
		}
	}
	out := make([]string, len(subset))
	copy(out, subset)
	return out, nil
}
