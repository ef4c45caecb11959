package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// DayRecordRepository интерфейс хранилища записей дней
type DayRecordRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
