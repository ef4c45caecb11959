package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// DayRecordRepository интерфейс хранилища записей дней
type DayRecordRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayRecord, error)
	Commit(ctx context.Context, rec *domain.DayRecord) error
}

// ConfigRepository интерфейс репозитория конфигураций услуг
type ConfigRepository interface {
	GetByServiceType(ctx context.Context, serviceType string) (*domain.ServiceConfig, error)
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator интерфейс генерации идентификаторов бронирований (для тестирования)
type IDGenerator interface {
	NewID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDGenerator генератор идентификаторов на основе UUID v4
type UUIDGenerator struct{}

// NewID возвращает новый идентификатор бронирования
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
