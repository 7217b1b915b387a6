// pkg/cleaner/dates.go
package cleaner

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// DatesResult describes the effect of ParseDates
type DatesResult struct {
	// Unparsable counts, per column, the present cells that matched no
	// candidate format and became missing
	Unparsable map[string]int
}

// ParseDates converts the named text columns to temporal columns.
// Each cell is tried against the ordered candidate layouts, first
// match wins; a cell matching none becomes the missing marker and is
// counted. A column whose present cells all fail to parse is a
// CleaningError. An already-temporal column is left untouched; when
// formats is empty, DefaultDateFormats applies.
func (c *Cleaner) ParseDates(t table.Table, columns []string, formats []string) (table.Table, DatesResult, error) {
	if len(columns) == 0 {
		return t, DatesResult{}, &model.ConfigurationError{
			Param:  "columns",
			Reason: "at least one date column is required",
		}
	}
	if len(formats) == 0 {
		formats = DefaultDateFormats
	}

	out := t
	result := DatesResult{Unparsable: make(map[string]int, len(columns))}
	for _, name := range columns {
		col, ok := out.Column(name)
		if !ok {
			return t, DatesResult{}, &model.ConfigurationError{
				Param:  "columns",
				Reason: fmt.Sprintf("unknown column %q", name),
			}
		}
		if col.Type == table.Temporal {
			result.Unparsable[name] = 0
			continue
		}
		if col.Type != table.Text {
			return t, DatesResult{}, &model.ConfigurationError{
				Param:  "columns",
				Reason: fmt.Sprintf("column %q is %s, not text", name, col.Type),
			}
		}

		values := make([]interface{}, col.Len())
		present, failed := 0, 0
		for i := 0; i < col.Len(); i++ {
			s, ok := col.Value(i).(string)
			if !ok {
				values[i] = nil
				continue
			}
			present++
			if ts, ok := parseWithFormats(s, formats); ok {
				values[i] = ts
			} else {
				values[i] = nil
				failed++
			}
		}
		if present > 0 && failed == present {
			return t, DatesResult{}, &model.CleaningError{
				Op:     "parse_dates",
				Column: name,
				Reason: "no cell matched any candidate format",
			}
		}
		result.Unparsable[name] = failed

		newCol, err := table.NewColumn(name, table.Temporal, values)
		if err != nil {
			return t, DatesResult{}, fmt.Errorf("failed to rebuild column %q: %w", name, err)
		}
		out, err = out.WithColumn(name, newCol)
		if err != nil {
			return t, DatesResult{}, fmt.Errorf("failed to replace column %q: %w", name, err)
		}

		c.logger.Info("Parsed date column",
			zap.String("column", name),
			zap.Int("parsed", present-failed),
			zap.Int("unparsable", failed))
	}

	return out, result, nil
}

// parseWithFormats tries each layout in order, first match wins
func parseWithFormats(s string, formats []string) (time.Time, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range formats {
		if ts, err := time.Parse(layout, cleaned); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
