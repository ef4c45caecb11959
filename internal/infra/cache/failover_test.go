package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

// flakyCache кеш, отвечающий ошибкой, пока failing = true
type flakyCache struct {
	inner   *MemoryAvailabilityCache
	failing bool
	calls   int
}

func newFlakyCache() *flakyCache {
	return &flakyCache{inner: NewMemoryAvailabilityCache(time.Minute)}
}

func (c *flakyCache) GetDay(ctx context.Context, date string) (*DayAvailability, error) {
	c.calls++
	if c.failing {
		return nil, errors.New("connection refused")
	}
	return c.inner.GetDay(ctx, date)
}

func (c *flakyCache) SetDay(ctx context.Context, entry *DayAvailability) error {
	c.calls++
	if c.failing {
		return errors.New("connection refused")
	}
	return c.inner.SetDay(ctx, entry)
}

func (c *flakyCache) InvalidateDay(ctx context.Context, date string) error {
	c.calls++
	if c.failing {
		return errors.New("connection refused")
	}
	return c.inner.InvalidateDay(ctx, date)
}

func TestFailoverUsesPrimaryWhenHealthy(t *testing.T) {
	primary := newFlakyCache()
	fallback := NewMemoryAvailabilityCache(time.Minute)
	c := NewFailoverAvailabilityCache(primary, fallback, testLogger{})
	ctx := context.Background()

	entry := &DayAvailability{Date: "2026-09-15", FreeSlots: []int{9, 10}}
	require.NoError(t, c.SetDay(ctx, entry))

	got, err := c.GetDay(ctx, "2026-09-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.FreeSlots, got.FreeSlots)

	// Fallback при живом primary не наполняется
	inFallback, err := fallback.GetDay(ctx, "2026-09-15")
	require.NoError(t, err)
	assert.Nil(t, inFallback)
}

func TestFailoverSwitchesToFallback(t *testing.T) {
	primary := newFlakyCache()
	primary.failing = true
	fallback := NewMemoryAvailabilityCache(time.Minute)
	c := NewFailoverAvailabilityCache(primary, fallback, testLogger{})
	ctx := context.Background()

	// Запись уходит в fallback, чтение оттуда же, primary больше не дёргается
	entry := &DayAvailability{Date: "2026-09-15"}
	require.NoError(t, c.SetDay(ctx, entry))

	callsAfterSet := primary.calls
	got, err := c.GetDay(ctx, "2026-09-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, callsAfterSet, primary.calls, "primary must not be retried before the recovery interval")
}

func TestFailoverRecoversPrimary(t *testing.T) {
	primary := newFlakyCache()
	primary.failing = true
	fallback := NewMemoryAvailabilityCache(time.Minute)
	c := NewFailoverAvailabilityCache(primary, fallback, testLogger{})
	ctx := context.Background()

	require.NoError(t, c.SetDay(ctx, &DayAvailability{Date: "2026-09-15"}))
	assert.True(t, c.isDown.Load())

	// Primary ожил; отматываем lastCheck, чтобы не ждать интервал восстановления
	primary.failing = false
	c.mu.Lock()
	c.lastCheck = time.Now().Add(-2 * recoveryInterval)
	c.mu.Unlock()

	require.NoError(t, c.SetDay(ctx, &DayAvailability{Date: "2026-09-16"}))
	assert.False(t, c.isDown.Load())

	got, err := primary.inner.GetDay(ctx, "2026-09-16")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestFailoverInvalidatesBothSides(t *testing.T) {
	primary := newFlakyCache()
	fallback := NewMemoryAvailabilityCache(time.Minute)
	c := NewFailoverAvailabilityCache(primary, fallback, testLogger{})
	ctx := context.Background()

	// Одна и та же дата в обеих сторонах кеша
	require.NoError(t, primary.inner.SetDay(ctx, &DayAvailability{Date: "2026-09-15"}))
	require.NoError(t, fallback.SetDay(ctx, &DayAvailability{Date: "2026-09-15"}))

	require.NoError(t, c.InvalidateDay(ctx, "2026-09-15"))

	inPrimary, err := primary.inner.GetDay(ctx, "2026-09-15")
	require.NoError(t, err)
	assert.Nil(t, inPrimary)

	inFallback, err := fallback.GetDay(ctx, "2026-09-15")
	require.NoError(t, err)
	assert.Nil(t, inFallback)
}
