package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"prisma-remap/internal/config"
	"prisma-remap/internal/logging"
)

// Open connects to the configured database and verifies the connection,
// retrying with backoff until the configured connection timeout elapses.
// Connection progress is logged through the logger carried in ctx.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	logger := logging.FromContext(ctx).WithFields(slog.String("component", "catalog"))

	if err := cfg.RegisterTLS(); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := waitForDatabase(ctx, cfg, logger, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("connected to database",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Database),
	)
	return db, nil
}

func waitForDatabase(ctx context.Context, cfg *config.DatabaseConfig, logger *logging.Logger, db *sql.DB) error {
	timeout := cfg.ConnectionTimeout
	interval := cfg.ConnectionRetryInterval

	// If timeout is 0, try once and fail immediately
	if timeout == 0 {
		return db.PingContext(ctx)
	}

	deadline := time.Now().Add(timeout)
	attempt := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempt++
		err := db.PingContext(ctx)

		if err == nil {
			if attempt > 1 {
				logger.Info("database connection established", slog.Int("attempts", attempt))
			}
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("database not available after %v: %w", timeout, err)
		}

		logger.Warn("database not ready, retrying...",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", interval),
			slog.String("error", err.Error()),
		)
		time.Sleep(interval)

		// Exponential backoff, capped at 30s
		interval = min(interval*2, 30*time.Second)
	}
}
