package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// признаём primary живым снова не раньше, чем через этот интервал
const recoveryInterval = time.Minute

// FailoverAvailabilityCache обёртка над двумя кешами: при ошибке primary
// (Redis) переключается на fallback (память) и периодически пробует
// вернуться обратно
type FailoverAvailabilityCache struct {
	primary  AvailabilityCache
	fallback AvailabilityCache
	logger   Logger

	isDown    atomic.Bool
	mu        sync.Mutex
	lastCheck time.Time
}

// NewFailoverAvailabilityCache создает новый failover-кеш
func NewFailoverAvailabilityCache(primary, fallback AvailabilityCache, logger Logger) *FailoverAvailabilityCache {
	return &FailoverAvailabilityCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverAvailabilityCache) markDown(err error) {
	c.logger.Error("availability cache: primary failed, falling back to memory: %v", err)
	c.isDown.Store(true)
	c.mu.Lock()
	c.lastCheck = time.Now()
	c.mu.Unlock()
}

// shouldRetryPrimary проверяет, не пора ли попробовать primary снова
func (c *FailoverAvailabilityCache) shouldRetryPrimary() bool {
	if !c.isDown.Load() {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.lastCheck) > recoveryInterval {
		c.lastCheck = time.Now()
		return true
	}
	return false
}

func (c *FailoverAvailabilityCache) GetDay(ctx context.Context, date string) (*DayAvailability, error) {
	if c.shouldRetryPrimary() {
		entry, err := c.primary.GetDay(ctx, date)
		if err == nil {
			c.isDown.Store(false)
			return entry, nil
		}
		c.markDown(err)
	}
	return c.fallback.GetDay(ctx, date)
}

func (c *FailoverAvailabilityCache) SetDay(ctx context.Context, entry *DayAvailability) error {
	if c.shouldRetryPrimary() {
		err := c.primary.SetDay(ctx, entry)
		if err == nil {
			c.isDown.Store(false)
			return nil
		}
		c.markDown(err)
	}
	return c.fallback.SetDay(ctx, entry)
}

// InvalidateDay инвалидирует обе стороны: после commit устаревшая запись
// не должна пережить переключение между primary и fallback
func (c *FailoverAvailabilityCache) InvalidateDay(ctx context.Context, date string) error {
	fallbackErr := c.fallback.InvalidateDay(ctx, date)
	if c.shouldRetryPrimary() {
		if err := c.primary.InvalidateDay(ctx, date); err != nil {
			c.markDown(err)
			return err
		}
		c.isDown.Store(false)
	}
	return fallbackErr
}
