// pkg/ingest/csv.go
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/table"
)

// CSVSource reads a delimited text file into a table. Column types are
// inferred per column: numeric when every present cell parses as a
// number, bool when every present cell is true/false, text otherwise.
// An empty or whitespace-only cell is the missing marker.
type CSVSource struct {
	path   string
	logger *zap.Logger
}

// NewCSVSource creates a source for the CSV file at path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{
		path:   path,
		logger: zap.L().Named("csv-source"),
	}
}

// Read loads and types the whole file
func (s *CSVSource) Read(ctx context.Context) (table.Table, error) {
	if err := ctx.Err(); err != nil {
		return table.Table{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	s.logger.Info("Ingested CSV file",
		zap.String("path", s.path),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumColumns()))
	return t, nil
}

// Close is a no-op; the file handle only lives inside Read
func (s *CSVSource) Close() error {
	return nil
}

// ReadCSV parses CSV data with a header row into a typed table
func ReadCSV(r io.Reader) (table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read header: %w", err)
	}

	var raw [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table.Table{}, fmt.Errorf("failed to read row %d: %w", len(raw)+1, err)
		}
		if len(rec) != len(header) {
			return table.Table{}, fmt.Errorf("row %d has %d fields, want %d", len(raw)+1, len(rec), len(header))
		}
		raw = append(raw, rec)
	}

	columns := make([]table.Column, len(header))
	for i, name := range header {
		cells := make([]string, len(raw))
		for r, rec := range raw {
			cells[r] = rec[i]
		}
		col, err := typeColumn(name, cells)
		if err != nil {
			return table.Table{}, err
		}
		columns[i] = col
	}
	return table.New(columns...)
}

// typeColumn infers the dtype of a raw string column and converts it
func typeColumn(name string, cells []string) (table.Column, error) {
	isNumeric, isBool := true, true
	present := 0
	for _, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		present++
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			isNumeric = false
		}
		switch strings.ToLower(trimmed) {
		case "true", "false":
		default:
			isBool = false
		}
	}

	values := make([]interface{}, len(cells))
	switch {
	case present > 0 && isNumeric:
		for i, cell := range cells {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				continue
			}
			f, _ := strconv.ParseFloat(trimmed, 64)
			values[i] = f
		}
		return table.NewColumn(name, table.Numeric, values)
	case present > 0 && isBool:
		for i, cell := range cells {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				continue
			}
			values[i] = strings.EqualFold(trimmed, "true")
		}
		return table.NewColumn(name, table.Bool, values)
	default:
		for i, cell := range cells {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			values[i] = cell
		}
		return table.NewColumn(name, table.Text, values)
	}
}
