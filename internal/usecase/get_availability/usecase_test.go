package get_availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/infra/cache"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeDayRepo struct {
	records []*domain.DayRecord
	err     error
	calls   int
}

func (r *fakeDayRepo) GetRange(context.Context, time.Time, time.Time) ([]*domain.DayRecord, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.records, nil
}

type fakeSettingsRepo struct {
	settings domain.EngineSettings
}

func (r *fakeSettingsRepo) Get(context.Context) (domain.EngineSettings, error) {
	return r.settings, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*cache.DayAvailability
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*cache.DayAvailability)}
}

func (c *fakeCache) GetDay(_ context.Context, date string) (*cache.DayAvailability, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[date], nil
}

func (c *fakeCache) SetDay(_ context.Context, entry *cache.DayAvailability) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Date] = entry
	return nil
}

func date(day int) time.Time {
	return time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
}

func bookedDay(d time.Time, hours ...int) *domain.DayRecord {
	rec := domain.NewDayRecord(d)
	for _, h := range hours {
		rec.BookedSlots[h] = domain.SlotOccupant{BookingID: "b1"}
	}
	rec.FullyBooked = !domain.ConsecutiveAvailable(rec.BookedSlots, domain.DefaultEngineSettings())
	rec.Version = 1
	return rec
}

func newTestUseCase(repo *fakeDayRepo, c *fakeCache) *UseCase {
	return NewUseCase(repo, &fakeSettingsRepo{settings: domain.DefaultEngineSettings()}, c, nopLogger{})
}

func TestExecuteReturnsEveryDayOfRange(t *testing.T) {
	fullHours := make([]int, 0)
	for h := 7; h <= 20; h++ {
		fullHours = append(fullHours, h)
	}

	repo := &fakeDayRepo{records: []*domain.DayRecord{
		bookedDay(date(15), 9, 10, 11),
		bookedDay(date(16), fullHours...),
	}}
	uc := newTestUseCase(repo, newFakeCache())

	resp, err := uc.Execute(context.Background(), &Request{From: date(14), To: date(17)})
	require.NoError(t, err)
	require.Len(t, resp.Days, 4)

	// День без записи полностью свободен
	assert.Equal(t, "2026-09-14", resp.Days[0].Date)
	assert.False(t, resp.Days[0].Unavailable)
	assert.Len(t, resp.Days[0].FreeSlots, 14)

	// Частично занятый день отдаёт свободные часы без занятых
	assert.Equal(t, "2026-09-15", resp.Days[1].Date)
	assert.False(t, resp.Days[1].Unavailable)
	assert.NotContains(t, resp.Days[1].FreeSlots, 9)
	assert.NotContains(t, resp.Days[1].FreeSlots, 11)
	assert.Contains(t, resp.Days[1].FreeSlots, 12)

	// Полностью занятый день попадает в список недоступных
	assert.Equal(t, "2026-09-16", resp.Days[2].Date)
	assert.True(t, resp.Days[2].Unavailable)
	assert.True(t, resp.Days[2].FullyBooked)
	assert.Empty(t, resp.Days[2].FreeSlots)

	assert.Equal(t, []string{"2026-09-16"}, resp.UnavailableDates)
}

func TestExecuteManualBlockIsUnavailable(t *testing.T) {
	blocked := domain.NewDayRecord(date(15))
	blocked.ManualBlock = true
	blocked.Version = 1

	repo := &fakeDayRepo{records: []*domain.DayRecord{blocked}}
	uc := newTestUseCase(repo, newFakeCache())

	resp, err := uc.Execute(context.Background(), &Request{From: date(15), To: date(15)})
	require.NoError(t, err)

	// Ручная блокировка делает день недоступным, но FullyBooked не выставляет
	assert.True(t, resp.Days[0].Unavailable)
	assert.False(t, resp.Days[0].FullyBooked)
	assert.Equal(t, []string{"2026-09-15"}, resp.UnavailableDates)
}

func TestExecuteUsesCache(t *testing.T) {
	repo := &fakeDayRepo{}
	c := newFakeCache()
	uc := newTestUseCase(repo, c)
	ctx := context.Background()

	// Первый запрос наполняет кеш из хранилища
	_, err := uc.Execute(ctx, &Request{From: date(15), To: date(16)})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Len(t, c.entries, 2)

	// Повторный запрос целиком отвечает из кеша
	resp, err := uc.Execute(ctx, &Request{From: date(15), To: date(16)})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2026-09-15", resp.Days[0].Date)
}

func TestExecuteCacheFailureFallsThrough(t *testing.T) {
	repo := &fakeDayRepo{records: []*domain.DayRecord{bookedDay(date(15), 9, 10)}}
	c := newFakeCache()
	c.getErr = errors.New("cache: connection refused")
	uc := newTestUseCase(repo, c)

	// Ошибка кеша не роняет запрос: ответ собирается из хранилища
	resp, err := uc.Execute(context.Background(), &Request{From: date(15), To: date(15)})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.NotContains(t, resp.Days[0].FreeSlots, 9)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&fakeDayRepo{}, newFakeCache())
	ctx := context.Background()

	t.Run("MissingDates", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ReversedRange", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{From: date(16), To: date(15)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("RangeTooWide", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{From: date(1), To: date(1).AddDate(0, 0, maxRangeDays)})
		assert.ErrorIs(t, err, ErrRangeTooWide)
	})

	t.Run("SingleDay", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{From: date(15), To: date(15)})
		require.NoError(t, err)
		assert.Len(t, resp.Days, 1)
	})
}

func TestExecuteStoreFailure(t *testing.T) {
	repo := &fakeDayRepo{err: errors.New("pq: connection reset")}
	uc := newTestUseCase(repo, newFakeCache())

	_, err := uc.Execute(context.Background(), &Request{From: date(15), To: date(16)})
	assert.ErrorIs(t, err, ErrInternal)
}
