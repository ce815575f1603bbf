package session

import (
	"context"
	"fmt"
	"time"

	"storefront-client/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Open creates the session store selected by the configuration.
// The returned close function releases any connection the backend holds.
func Open(ctx context.Context, cfg config.SessionConfig, logger zerolog.Logger) (Store, func(), error) {
	switch cfg.Backend {
	case config.SessionBackendFile:
		return NewFileStore(cfg.FilePath, logger), func() {}, nil

	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
		}

		logger.Debug().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("redis session store connected")

		return NewRedisStore(rdb, cfg.Key, cfg.TTL, logger), func() { rdb.Close() }, nil

	case config.SessionBackendPostgres:
		pool, err := newPool(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, nil, err
		}

		if err := EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}

		return NewPostgresStore(pool, cfg.Key, logger), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend: %s", cfg.Backend)
	}
}

// newPool creates a small PostgreSQL connection pool for session storage.
func newPool(ctx context.Context, dsn string, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// A CLI process needs at most a couple of connections
	poolConfig.MaxConns = 2
	poolConfig.MinConns = 0
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	logger.Debug().
		Str("host", poolConfig.ConnConfig.Host).
		Uint16("port", poolConfig.ConnConfig.Port).
		Str("database", poolConfig.ConnConfig.Database).
		Msg("creating session database pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
