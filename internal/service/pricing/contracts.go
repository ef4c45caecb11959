package pricing

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигураций услуг
type ConfigRepository interface {
	GetByServiceType(ctx context.Context, serviceType string) (*domain.ServiceConfig, error)
}

// SettingsRepository интерфейс репозитория настроек движка
type SettingsRepository interface {
	Get(ctx context.Context) (domain.EngineSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
