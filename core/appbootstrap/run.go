package appbootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stpaul-crime/api"
	"stpaul-crime/config"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

// Open connects to the configured database and applies pending migrations
// when enabled.
func Open(ctx context.Context, cfg *config.AppConfig, logger *utils.Logger) (*sql.DB, error) {
	db, err := store.NewDB(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Migrate {
		if err := store.ApplyMigrations(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}
	return db, nil
}

func NewServer(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) *api.Server {
	rt := composeRuntime(cfg, db, logger)
	return api.NewServer(cfg, rt.serverDeps, logger)
}

// Run serves until ctx is cancelled, then shuts the server down within the
// configured timeout.
func Run(ctx context.Context, cfg *config.AppConfig, logger *utils.Logger) error {
	db, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := NewServer(cfg, db, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	timeout := time.Duration(cfg.HTTP.ShutdownTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	logger.Printf("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
