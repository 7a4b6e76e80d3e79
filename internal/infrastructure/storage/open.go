package storage

import (
	"context"
	"fmt"

	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/config"
)

// Open creates the repository selected by cfg.Driver
func Open(ctx context.Context, cfg config.StorageConfig) (Repository, error) {
	switch cfg.Driver {
	case "", "sqlite", "sqlite3":
		return NewSQLiteStore(cfg.DatabasePath)
	case "postgres", "postgresql":
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
