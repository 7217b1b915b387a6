// pkg/ingest/postgres.go
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/config"
	"github.com/dataqual/dataqual/pkg/table"
)

// PostgresSource reads a table or query result from PostgreSQL
type PostgresSource struct {
	db     *sqlx.DB
	logger *zap.Logger
	cfg    *config.PostgresConfig
	query  string
}

// NewPostgresSource connects to PostgreSQL and prepares a source for
// the given query.
func NewPostgresSource(ctx context.Context, cfg *config.PostgresConfig, query string) (*PostgresSource, error) {
	logger := zap.L().Named("postgres-source")

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	applyConnectionSettings(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)

	if err := pingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &PostgresSource{
		db:     db,
		logger: logger,
		cfg:    cfg,
		query:  query,
	}, nil
}

// Read runs the query and materializes the result set
func (s *PostgresSource) Read(ctx context.Context) (table.Table, error) {
	names, records, err := readRecords(ctx, s.db, s.query, s.cfg.QueryTimeout)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read from PostgreSQL: %w", err)
	}

	t, err := fromRecords(names, records)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to build table: %w", err)
	}

	s.logger.Info("Ingested PostgreSQL result set",
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumColumns()))
	return t, nil
}

// Close closes the database connection
func (s *PostgresSource) Close() error {
	s.logger.Info("Closing PostgreSQL connection")
	return s.db.Close()
}
