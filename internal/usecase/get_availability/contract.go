package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/infra/cache"
)

// DayRecordRepository интерфейс хранилища записей дней
type DayRecordRepository interface {
	GetRange(ctx context.Context, from, to time.Time) ([]*domain.DayRecord, error)
}

// SettingsRepository интерфейс репозитория настроек движка
type SettingsRepository interface {
	Get(ctx context.Context) (domain.EngineSettings, error)
}

// AvailabilityCache интерфейс кеша доступности
type AvailabilityCache interface {
	GetDay(ctx context.Context, date string) (*cache.DayAvailability, error)
	SetDay(ctx context.Context, entry *cache.DayAvailability) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
