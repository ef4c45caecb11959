package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	dayRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/dayrecord"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeDayRepo struct {
	day *domain.DayRecord
	err error
}

func (r *fakeDayRepo) GetByDate(context.Context, time.Time) (*domain.DayRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.day, nil
}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func TestGetByDateAndID(t *testing.T) {
	occ := domain.SlotOccupant{
		BookingID:        "b1",
		BookedBy:         "anna@example.com",
		Name:             "Анна",
		Phone:            "+79990001122",
		BookingTimestamp: "2026-09-01T12:00:00Z",
		ServiceType:      "regular_cleaning",
	}
	day := domain.NewDayRecord(testDate)
	day.BookedSlots[9] = occ
	day.BookedSlots[10] = occ
	day.BookedSlots[11] = occ
	day.BookedSlots[14] = domain.SlotOccupant{BookingID: "b2"}

	t.Run("ReconstructsRangeFromSlots", func(t *testing.T) {
		svc := NewService(&fakeDayRepo{day: day}, nopLogger{})

		booking, err := svc.GetByDateAndID(context.Background(), testDate, "b1")
		require.NoError(t, err)
		assert.Equal(t, "b1", booking.ID)
		assert.Equal(t, 9, booking.StartHour)
		assert.Equal(t, 3, booking.Hours)
		assert.Equal(t, 12, booking.EndHour())
		assert.Equal(t, []int{9, 10, 11}, booking.Slots)
		assert.Equal(t, "regular_cleaning", booking.ServiceType)
		assert.Equal(t, "Анна", booking.Customer.Name)
		assert.Equal(t, "anna@example.com", booking.Customer.BookedBy)
		assert.Equal(t, domain.StatusConfirmed, booking.Status)
		assert.True(t, booking.CreatedAt.Equal(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		svc := NewService(&fakeDayRepo{day: day}, nopLogger{})

		_, err := svc.GetByDateAndID(context.Background(), testDate, "missing")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("UnknownDay", func(t *testing.T) {
		svc := NewService(&fakeDayRepo{err: dayRepo.ErrDayNotFound}, nopLogger{})

		_, err := svc.GetByDateAndID(context.Background(), testDate, "b1")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("RepositoryFailure", func(t *testing.T) {
		svc := NewService(&fakeDayRepo{err: errors.New("pq: connection reset")}, nopLogger{})

		_, err := svc.GetByDateAndID(context.Background(), testDate, "b1")
		assert.ErrorIs(t, err, ErrInternal)
	})
}
