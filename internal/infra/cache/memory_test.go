package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAvailabilityCache(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAndGetDay", func(t *testing.T) {
		c := NewMemoryAvailabilityCache(time.Minute)

		entry := &DayAvailability{Date: "2026-09-15", FreeSlots: []int{7, 8}}
		require.NoError(t, c.SetDay(ctx, entry))

		got, err := c.GetDay(ctx, "2026-09-15")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entry, got)
	})

	t.Run("MissIsNotAnError", func(t *testing.T) {
		c := NewMemoryAvailabilityCache(time.Minute)

		got, err := c.GetDay(ctx, "2026-09-15")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("InvalidateDay", func(t *testing.T) {
		c := NewMemoryAvailabilityCache(time.Minute)
		require.NoError(t, c.SetDay(ctx, &DayAvailability{Date: "2026-09-15"}))

		require.NoError(t, c.InvalidateDay(ctx, "2026-09-15"))

		got, err := c.GetDay(ctx, "2026-09-15")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("EntryExpires", func(t *testing.T) {
		c := NewMemoryAvailabilityCache(time.Millisecond)
		require.NoError(t, c.SetDay(ctx, &DayAvailability{Date: "2026-09-15"}))

		time.Sleep(5 * time.Millisecond)

		got, err := c.GetDay(ctx, "2026-09-15")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
