// pkg/ingest/ingest.go

// Package ingest loads external tabular data into the in-memory table
// the cleaning and validation engines operate on. Ingestion failures
// are opaque to those engines; they only ever see a well-formed table.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dataqual/dataqual/pkg/table"
)

// Source is a location tabular data can be read from
type Source interface {
	// Read materializes the source into a table
	Read(ctx context.Context) (table.Table, error)

	// Close releases the source's resources
	Close() error
}

// fromRecords builds a table out of row maps in the given column
// order, inferring each column's dtype from its first present value.
func fromRecords(names []string, records []map[string]interface{}) (table.Table, error) {
	columns := make([]table.Column, 0, len(names))
	for _, name := range names {
		dtype := inferDType(name, records)
		values := make([]interface{}, len(records))
		for i, rec := range records {
			cell, err := table.Coerce(rec[name], dtype)
			if err != nil {
				return table.Table{}, fmt.Errorf("row %d, column %q: %w", i, name, err)
			}
			values[i] = cell
		}
		col, err := table.NewColumn(name, dtype, values)
		if err != nil {
			return table.Table{}, fmt.Errorf("failed to build column: %w", err)
		}
		columns = append(columns, col)
	}
	return table.New(columns...)
}

// inferDType picks a column dtype from the first non-nil value
func inferDType(name string, records []map[string]interface{}) table.DType {
	for _, rec := range records {
		switch rec[name].(type) {
		case nil:
			continue
		case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return table.Numeric
		case bool:
			return table.Bool
		case time.Time:
			return table.Temporal
		default:
			return table.Text
		}
	}
	return table.Text
}

// pingWithTimeout verifies a database connection within the timeout
func pingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping failed after %v: %w", timeout, err)
	}
	return nil
}

// applyConnectionSettings configures database connection pool settings
func applyConnectionSettings(db *sqlx.DB, maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
	if maxIdleTime > 0 {
		db.SetConnMaxIdleTime(maxIdleTime)
	}
}

// readRecords runs a query and scans every row into a map, preserving
// the result set's column order.
func readRecords(ctx context.Context, db *sqlx.DB, query string, timeout time.Duration) ([]string, []map[string]interface{}, error) {
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rows, err := db.QueryxContext(queryCtx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read column names: %w", err)
	}

	var records []map[string]interface{}
	for rows.Next() {
		rec := make(map[string]interface{}, len(names))
		if err := rows.MapScan(rec); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		// Drivers hand back []byte for text; normalize to string so
		// dtype inference sees one representation.
		for k, v := range rec {
			if b, ok := v.([]byte); ok {
				rec[k] = string(b)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return names, records, nil
}
