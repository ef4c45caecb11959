package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryAvailabilityCache кеш доступности в памяти процесса.
// Используется как резерв при недоступном Redis и в тестах
type MemoryAvailabilityCache struct {
	entries sync.Map
	ttl     time.Duration
}

type memoryEntry struct {
	value     *DayAvailability
	expiresAt time.Time
}

// NewMemoryAvailabilityCache создает новый кеш в памяти
func NewMemoryAvailabilityCache(ttl time.Duration) *MemoryAvailabilityCache {
	return &MemoryAvailabilityCache{ttl: ttl}
}

func (c *MemoryAvailabilityCache) GetDay(_ context.Context, date string) (*DayAvailability, error) {
	val, ok := c.entries.Load(date)
	if !ok {
		return nil, nil
	}
	entry := val.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.entries.Delete(date)
		return nil, nil
	}
	return entry.value, nil
}

func (c *MemoryAvailabilityCache) SetDay(_ context.Context, entry *DayAvailability) error {
	c.entries.Store(entry.Date, memoryEntry{
		value:     entry,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

func (c *MemoryAvailabilityCache) InvalidateDay(_ context.Context, date string) error {
	c.entries.Delete(date)
	return nil
}
