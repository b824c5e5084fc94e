package design

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/cafeplan/pkg/cache"
)

// RedisConfig configures [NewRedisStore].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix defaults to "cafeplan:design:".
	Prefix string

	Backoff cache.Backoff
}

// RedisStore keeps designs as msgpack values whose Redis expiry matches the
// design expiry, so Cleanup has nothing to do.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and pings it.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := cache.Ping(ctx, client, cfg.Backoff); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisStoreWithClient(client, cfg.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client, mainly for tests.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cafeplan:design:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Save(ctx context.Context, d *Design) error {
	if err := validate(d); err != nil {
		return err
	}
	ttl := d.TTL()
	if ttl == 0 {
		return expired(d.ID)
	}
	data, err := msgpack.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode design: %w", err)
	}
	if err := s.client.Set(ctx, s.key(d.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Design, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var d Design
	if err := msgpack.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode design: %w", err)
	}
	if d.IsExpired() {
		return nil, expired(id)
	}
	return &d, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if checkID(id) != nil {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}

// Cleanup is a no-op: Redis expires keys itself.
func (s *RedisStore) Cleanup(context.Context) (int, error) { return 0, nil }

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
