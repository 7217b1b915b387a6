// pkg/ingest/snowflake.go
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	sf "github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/config"
	"github.com/dataqual/dataqual/pkg/table"
)

// SnowflakeSource reads a query result from Snowflake
type SnowflakeSource struct {
	db     *sqlx.DB
	logger *zap.Logger
	cfg    *config.SnowflakeConfig
	query  string
}

// NewSnowflakeSource connects to Snowflake and prepares a source for
// the given query.
func NewSnowflakeSource(ctx context.Context, cfg *config.SnowflakeConfig, query string) (*SnowflakeSource, error) {
	logger := zap.L().Named("snowflake-source")

	// Build the DSN with Snowflake's own builder
	sfConfig := &sf.Config{
		Account:       cfg.Account,
		User:          cfg.User,
		Password:      cfg.Password,
		Database:      cfg.Database,
		Schema:        cfg.Schema,
		Warehouse:     cfg.Warehouse,
		Role:          cfg.Role,
		Authenticator: cfg.Authenticator,
	}

	// Log connection attempt (without credentials)
	logger.Info("Connecting to Snowflake",
		zap.String("account", cfg.Account),
		zap.String("user", cfg.User),
		zap.String("database", cfg.Database),
		zap.String("warehouse", cfg.Warehouse))

	dsn, err := sf.DSN(sfConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build Snowflake DSN: %w", err)
	}

	db, err := sqlx.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Snowflake connection: %w", err)
	}

	applyConnectionSettings(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)

	if err := pingWithTimeout(ctx, db, 10*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}

	return &SnowflakeSource{
		db:     db,
		logger: logger,
		cfg:    cfg,
		query:  query,
	}, nil
}

// Read runs the query and materializes the result set
func (s *SnowflakeSource) Read(ctx context.Context) (table.Table, error) {
	names, records, err := readRecords(ctx, s.db, s.query, s.cfg.QueryTimeout)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read from Snowflake: %w", err)
	}

	t, err := fromRecords(names, records)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to build table: %w", err)
	}

	s.logger.Info("Ingested Snowflake result set",
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumColumns()))
	return t, nil
}

// Close closes the database connection
func (s *SnowflakeSource) Close() error {
	s.logger.Info("Closing Snowflake connection")
	return s.db.Close()
}
