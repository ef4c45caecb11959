package get_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

type BookingsService interface {
	GetByDateAndID(ctx context.Context, date time.Time, bookingID string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
