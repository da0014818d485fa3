package services

import (
	"context"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/services/postgres_service"
	"github.com/racquetek/booking-api/functions/gateway/services/sqlite_service"
	"github.com/racquetek/booking-api/functions/gateway/startup"
	"github.com/racquetek/booking-api/functions/gateway/transport"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

// OpenStore builds the backend selected by cfg.StoreDriver and runs its
// startup tasks (schema or migrations). The caller closes the store.
func OpenStore(ctx context.Context, cfg helpers.Config) (types.Store, error) {
	registry := startup.NewRegistry()
	var store types.Store

	switch cfg.StoreDriver {
	case helpers.STORE_DRIVER_SQLITE:
		db, err := transport.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqliteStore := sqlite_service.NewSqliteService(db)
		registry.Register("SQLite Schema", sqliteStore.InitSchema)
		store = sqliteStore
	default:
		pool, err := transport.NewPostgresPool(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		registry.Register("Database Migrations", startup.NewMigrator(cfg.PostgresConnString(), cfg.MigrationsDir).Run)
		store = postgres_service.NewPostgresService(pool)
	}

	if err := registry.RunAll(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
