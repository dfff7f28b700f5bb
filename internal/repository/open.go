package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a RecordStore that can report its health.
type Store interface {
	RecordStore
	Ping(ctx context.Context) error
}

// Open builds the record store selected by cfg.Driver. The returned func releases it.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, func(), error) {
	switch cfg.Driver {
	case config.StorageDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := NewPGRecordStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, pool.Close, nil
	case config.StorageDriverJSON, "":
		store, err := NewJSONFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
