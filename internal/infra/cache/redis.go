package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CleaningService/internal/config"
)

// RedisAvailabilityCache кеш доступности в Redis с TTL
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// NewRedisAvailabilityCache создает новый Redis-кеш доступности
func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func dayKey(date string) string {
	return fmt.Sprintf("availability:%s", date)
}

// GetDay читает кешированную доступность дня; (nil, nil) при промахе
func (c *RedisAvailabilityCache) GetDay(ctx context.Context, date string) (*DayAvailability, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := c.client.Get(ctx, dayKey(date)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day availability from redis: %w", err)
	}

	var entry DayAvailability
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal day availability: %w", err)
	}
	return &entry, nil
}

// SetDay сохраняет доступность дня с TTL
func (c *RedisAvailabilityCache) SetDay(ctx context.Context, entry *DayAvailability) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal day availability: %w", err)
	}
	if err := c.client.Set(ctx, dayKey(entry.Date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set day availability in redis: %w", err)
	}
	return nil
}

// InvalidateDay удаляет кешированную доступность дня.
// Вызывается координаторами после каждого успешного commit
func (c *RedisAvailabilityCache) InvalidateDay(ctx context.Context, date string) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := c.client.Del(ctx, dayKey(date)).Err(); err != nil {
		return fmt.Errorf("failed to delete day availability from redis: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
