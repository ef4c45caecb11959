package serviceconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигураций услуг (таблица service_configs)
// Поля формы и правила ценообразования хранятся как jsonb и валидируются
// при каждом чтении, а не при каждом расчёте цены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var configColumns = []string{
	"id",
	"service_type",
	"name",
	"base_price",
	"hourly_rate",
	"min_hours",
	"two_cleaner_threshold",
	"fields",
	"rules",
	"enabled",
}

// GetByServiceType получает включённую конфигурацию услуги по её типу
func (r *Repository) GetByServiceType(ctx context.Context, serviceType string) (*domain.ServiceConfig, error) {
	query, args, err := psqlbuilder.Select(configColumns...).
		From("service_configs").
		Where(squirrel.Eq{"service_type": serviceType, "enabled": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceType - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg       domain.ServiceConfig
		threshold sql.NullInt64
		fieldsRaw []byte
		rulesRaw  []byte
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.ServiceType,
		&cfg.Name,
		&cfg.BasePrice,
		&cfg.HourlyRate,
		&cfg.MinHours,
		&threshold,
		&fieldsRaw,
		&rulesRaw,
		&cfg.Enabled,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceType - scan config: %v", ErrScanRow, err)
	}

	if threshold.Valid {
		value := int(threshold.Int64)
		cfg.TwoCleanerThreshold = &value
	}
	if err := json.Unmarshal(fieldsRaw, &cfg.Fields); err != nil {
		return nil, fmt.Errorf("%w: GetByServiceType - decode fields: %v", ErrConfigInvalid, err)
	}
	if err := json.Unmarshal(rulesRaw, &cfg.Rules); err != nil {
		return nil, fmt.Errorf("%w: GetByServiceType - decode rules: %v", ErrConfigInvalid, err)
	}

	// Правила валидируются здесь, на загрузке, чтобы расчёт цены работал
	// только с корректным набором операторов и действий
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: GetByServiceType - %v", ErrConfigInvalid, err)
	}

	return &cfg, nil
}
