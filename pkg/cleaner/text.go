// pkg/cleaner/text.go
package cleaner

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

var (
	nonAlnumRun   = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// RenameResult describes the effect of StandardizeColumnNames
type RenameResult struct {
	// Renamed maps original names to their normalized form, for names
	// that actually changed
	Renamed map[string]string
}

// StandardizeColumnNames lower-cases every column name and collapses
// runs of non-alphanumeric characters to a single underscore. Two
// distinct names normalizing to the same result is a CleaningError.
func (c *Cleaner) StandardizeColumnNames(t table.Table) (table.Table, RenameResult, error) {
	rename := make(map[string]string)
	taken := make(map[string]string, t.NumColumns())
	for _, name := range t.ColumnNames() {
		normalized := normalizeName(name)
		if prev, clash := taken[normalized]; clash {
			return t, RenameResult{}, &model.CleaningError{
				Op:     "standardize_column_names",
				Reason: fmt.Sprintf("%q and %q both normalize to %q", prev, name, normalized),
			}
		}
		taken[normalized] = name
		if normalized != name {
			rename[name] = normalized
		}
	}

	out, err := t.RenameColumns(rename)
	if err != nil {
		return t, RenameResult{}, fmt.Errorf("failed to rename columns: %w", err)
	}

	if len(rename) > 0 {
		c.logger.Info("Standardized column names", zap.Int("renamed", len(rename)))
	}
	return out, RenameResult{Renamed: rename}, nil
}

// normalizeName trims outer whitespace, lower-cases, and collapses
// every run of non-alphanumeric characters to one underscore.
func normalizeName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	return nonAlnumRun.ReplaceAllString(lowered, "_")
}

// TextResult describes the effect of CleanTextColumns
type TextResult struct {
	CellsChanged int
}

// CleanTextColumns trims leading/trailing whitespace and collapses
// internal whitespace runs to one space in the given text columns (all
// text columns when none are named). Missing cells pass through.
func (c *Cleaner) CleanTextColumns(t table.Table, columns []string) (table.Table, TextResult, error) {
	var targets []string
	if len(columns) == 0 {
		for _, col := range t.Columns() {
			if col.Type == table.Text {
				targets = append(targets, col.Name)
			}
		}
	} else {
		for _, name := range columns {
			col, ok := t.Column(name)
			if !ok {
				return t, TextResult{}, &model.ConfigurationError{
					Param:  "columns",
					Reason: fmt.Sprintf("unknown column %q", name),
				}
			}
			if col.Type != table.Text {
				return t, TextResult{}, &model.ConfigurationError{
					Param:  "columns",
					Reason: fmt.Sprintf("column %q is %s, not text", name, col.Type),
				}
			}
			targets = append(targets, name)
		}
	}

	out := t
	changed := 0
	for _, name := range targets {
		col, _ := out.Column(name)
		values := make([]interface{}, col.Len())
		touched := false
		for i := 0; i < col.Len(); i++ {
			v := col.Value(i)
			s, ok := v.(string)
			if !ok {
				values[i] = v
				continue
			}
			cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
			values[i] = cleaned
			if cleaned != s {
				changed++
				touched = true
			}
		}
		if !touched {
			continue
		}
		newCol, err := table.NewColumn(name, table.Text, values)
		if err != nil {
			return t, TextResult{}, fmt.Errorf("failed to rebuild column %q: %w", name, err)
		}
		out, err = out.WithColumn(name, newCol)
		if err != nil {
			return t, TextResult{}, fmt.Errorf("failed to replace column %q: %w", name, err)
		}
	}

	c.logger.Info("Cleaned text columns",
		zap.Int("columns", len(targets)),
		zap.Int("cells_changed", changed))
	return out, TextResult{CellsChanged: changed}, nil
}
