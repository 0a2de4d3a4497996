package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss возвращается, когда ключа нет в кэше
	ErrCacheMiss = errors.New("cache: miss")

	// ErrCache возвращается при ошибках Redis и сериализации
	ErrCache = errors.New("cache: internal error")
)

// RedisCache кэш сущностей в Redis; значения хранятся как JSON
type RedisCache struct {
	redis  *redis.Client
	prefix string
}

// NewRedisCache создает кэш; prefix добавляется ко всем ключам
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{redis: client, prefix: prefix}
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

// Get читает значение key в dst
func (c *RedisCache) Get(ctx context.Context, key string, dst interface{}) error {
	data, err := c.redis.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrCache, key, err)
	}
	return nil
}

// Set сохраняет value под key; ttl 0 = без срока
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrCache, key, err)
	}

	if err := c.redis.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}
	return nil
}

// Delete удаляет ключи
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, c.key(k))
	}

	if err := c.redis.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: delete: %v", ErrCache, err)
	}
	return nil
}
