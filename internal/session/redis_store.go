package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// KeySession is the redis key layout for stored sessions: session:{key}.
const KeySession = "session:%s"

// redisStore implements Store on a redis string value.
type redisStore struct {
	rdb    *redis.Client
	key    string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a redis-backed session store.
// A zero ttl keeps the session until it is cleared.
func NewRedisStore(rdb *redis.Client, key string, ttl time.Duration, logger zerolog.Logger) Store {
	return &redisStore{
		rdb:    rdb,
		key:    fmt.Sprintf(KeySession, key),
		ttl:    ttl,
		logger: logger.With().Str("component", "session-redis").Logger(),
	}
}

// Load reads the session value.
func (s *redisStore) Load(ctx context.Context) (State, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.Debug().Str("key", s.key).Msg("no stored session")
			return State{}, nil
		}
		return State{}, fmt.Errorf("failed to read session %s: %w", s.key, err)
	}

	return Decode(data)
}

// Save writes the session value, refreshing its TTL.
func (s *redisStore) Save(ctx context.Context, state State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session %s: %w", s.key, err)
	}

	s.logger.Debug().Str("key", s.key).Dur("ttl", s.ttl).Msg("session saved")

	return nil
}

// Clear deletes the session value.
func (s *redisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", s.key, err)
	}
	return nil
}
