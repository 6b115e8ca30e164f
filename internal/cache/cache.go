// Package cache кэширует ответы внешнего каталога в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/pokedex-api/internal/models"
)

// DefaultPrefix — префикс ключей кэша каталога.
const DefaultPrefix = "pokedex:pokemon:"

// PokemonCache — минимальный контракт кэша записей каталога.
type PokemonCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	Get(ctx context.Context, key string) (*models.Pokemon, bool, error)
	// Set сохраняет запись с TTL.
	Set(ctx context.Context, key string, p *models.Pokemon, ttl time.Duration) error
	// Ping проверяет доступность Redis.
	Ping(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется DefaultPrefix.
func NewRedisCache(ctx context.Context, redisURL, prefix string) (PokemonCache, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(k string) string { return c.prefix + k }

// Храним запись как JSON-строку.
func (c *redisCache) Get(ctx context.Context, key string) (*models.Pokemon, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var p models.Pokemon
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, err
	}

	return &p, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, p *models.Pokemon, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *redisCache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *redisCache) Close() error { return c.rdb.Close() }
