// pkg/export/export.go

// Package export serializes cleaned tables and quality reports to
// persistent storage. It owns the byte-level formatting; the engines
// never touch the filesystem.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dataqual/dataqual/pkg/model"
	"github.com/dataqual/dataqual/pkg/table"
)

// WriteTableCSV writes the table as delimited text with a header row.
// Missing cells become empty fields; temporal cells use RFC 3339.
func WriteTableCSV(w io.Writer, t table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	names := t.ColumnNames()
	record := make([]string, len(names))
	for r := 0; r < t.NumRows(); r++ {
		for i, name := range names {
			v, _ := t.Value(r, name)
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableJSON writes the table as an array of row objects. Missing
// cells serialize as null.
func WriteTableJSON(w io.Writer, t table.Table) error {
	names := t.ColumnNames()
	records := make([]map[string]interface{}, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		rec := make(map[string]interface{}, len(names))
		for _, name := range names {
			v, _ := t.Value(r, name)
			rec[name] = v
		}
		records[r] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	return nil
}

// WriteReportJSON writes a quality report as indented JSON
func WriteReportJSON(w io.Writer, report *model.QualityReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteReportYAML writes a quality report as YAML
func WriteReportYAML(w io.Writer, report *model.QualityReport) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Format names a table serialization format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ExportTable writes the table to path in the given format, creating
// parent directories as needed.
func ExportTable(path string, t table.Table, format Format) error {
	logger := zap.L().Named("export")

	write := WriteTableCSV
	switch format {
	case FormatCSV:
	case FormatJSON:
		write = WriteTableJSON
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}

	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f, t); err != nil {
		return fmt.Errorf("failed to export table to %s: %w", path, err)
	}

	logger.Info("Exported cleaned table",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", t.NumRows()))
	return nil
}

// ExportReport writes the quality report to path; a .yaml or .yml
// extension selects YAML, anything else JSON.
func ExportReport(path string, report *model.QualityReport) error {
	logger := zap.L().Named("export")

	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = WriteReportYAML(f, report)
	default:
		err = WriteReportJSON(f, report)
	}
	if err != nil {
		return fmt.Errorf("failed to export report to %s: %w", path, err)
	}

	logger.Info("Exported quality report",
		zap.String("path", path),
		zap.String("report_id", report.ReportID))
	return nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// formatCell renders one cell for delimited output
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
