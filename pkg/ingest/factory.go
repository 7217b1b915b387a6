// pkg/ingest/factory.go
package ingest

import (
	"context"
	"fmt"

	"github.com/dataqual/dataqual/pkg/config"
)

// Kind names a supported source type
type Kind string

const (
	KindCSV       Kind = "csv"
	KindPostgres  Kind = "postgres"
	KindSnowflake Kind = "snowflake"
)

// NewSource creates a source of the given kind. location is a file
// path for CSV and a SQL query for the database kinds; database
// connection parameters come from the environment.
func NewSource(ctx context.Context, kind Kind, location string) (Source, error) {
	switch kind {
	case KindCSV:
		return NewCSVSource(location), nil
	case KindPostgres:
		cfg, err := config.LoadPostgresConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load PostgreSQL configuration: %w", err)
		}
		return NewPostgresSource(ctx, cfg, location)
	case KindSnowflake:
		cfg, err := config.LoadSnowflakeConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load Snowflake configuration: %w", err)
		}
		return NewSnowflakeSource(ctx, cfg, location)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", kind)
	}
}
