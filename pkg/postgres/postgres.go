package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is anything that can produce a connection string.
type Config interface {
	GetDSN() string
}

// PostgreDB wraps the pgx pool used by the credential store.
type PostgreDB struct {
	Pool *pgxpool.Pool
}

// New parses the DSN, opens the pool and verifies the connection with a
// ping before handing it out.
func New(ctx context.Context, config Config) (*PostgreDB, error) {
	dbConfig, err := pgxpool.ParseConfig(config.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgreDB{Pool: pool}, nil
}
