package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/gotvi/gotvi-backend/internal/common"
)

// Open connects to the configured database. Postgres DSNs go through a pgx
// pool wrapped as *sql.DB; anything else is treated as a sqlite file DSN
// (the local/dev default). The returned closer tears down both layers.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	if isPostgresDSN(cfg.DSN) {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(cfg, logger)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func openPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, func(), error) {
	logger.Info("connecting to database", "driver", "pgx")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "gotvi-backend"

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	closer := func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing database handle", "error", err)
		}
		pool.Close()
	}
	logger.Info("successfully connected to database")
	return db, closer, nil
}

func openSQLite(cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, func(), error) {
	logger.Info("connecting to database", "driver", "sqlite", "dsn", cfg.DSN)
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		return nil, nil, err
	}
	// modernc sqlite is single-writer; keep the pool small.
	db.SetMaxOpenConns(1)
	closer := func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing database handle", "error", err)
		}
	}
	return db, closer, nil
}

// HealthCheck pings the database with a bounded deadline.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		return common.WrapError(err, "database ping")
	}
	return nil
}

// Migrate creates the pipeline's tables when they are missing. The schema is
// intentionally portable between sqlite and Postgres.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id       TEXT PRIMARY KEY,
			user_id  TEXT NOT NULL,
			name     TEXT NOT NULL,
			quantity REAL NOT NULL DEFAULT 0,
			unit     TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS receipts (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			total_amount REAL NOT NULL,
			processed_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS receipt_items (
			receipt_id TEXT NOT NULL,
			position   INTEGER NOT NULL,
			kind       TEXT NOT NULL,
			name       TEXT NOT NULL,
			quantity   REAL,
			price      REAL,
			unit       TEXT,
			PRIMARY KEY (receipt_id, kind, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_user ON inventory_items (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_user ON receipts (user_id, processed_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("migration statement failed", "error", err)
			return common.WrapError(err, "migrate")
		}
	}
	return nil
}
