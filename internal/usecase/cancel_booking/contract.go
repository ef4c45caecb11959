package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// DayRecordRepository интерфейс хранилища записей дней
type DayRecordRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayRecord, error)
	Commit(ctx context.Context, rec *domain.DayRecord) error
	Delete(ctx context.Context, date time.Time, version int64) error
}

// SettingsRepository интерфейс репозитория настроек движка
type SettingsRepository interface {
	Get(ctx context.Context) (domain.EngineSettings, error)
}

// AvailabilityCache интерфейс инвалидации кеша доступности
type AvailabilityCache interface {
	InvalidateDay(ctx context.Context, date string) error
}

// CommitMetrics интерфейс метрик optimistic commit
type CommitMetrics interface {
	ObserveCommit(operation, result string)
	IncCommitConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
