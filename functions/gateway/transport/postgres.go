package transport

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	postgresConnectAttempts = 10
	postgresRetryDelay      = 2 * time.Second
)

// NewPostgresPool opens a pool and waits for the server to answer a ping.
// The caller owns the pool.
func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	for i := 0; i < postgresConnectAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			log.Println("Connected to postgres successfully")
			return pool, nil
		}

		log.Printf("Failed to ping postgres (attempt %d/%d): %v", i+1, postgresConnectAttempts, err)
		if i < postgresConnectAttempts-1 {
			select {
			case <-ctx.Done():
				pool.Close()
				return nil, ctx.Err()
			case <-time.After(postgresRetryDelay):
			}
		}
	}

	pool.Close()
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", postgresConnectAttempts, err)
}
