package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек движка (таблица engine_settings, одна строка)
// Диапазон рабочих часов, минимальный непрерывный интервал и порог двух
// клинеров - входные данные движка, а не константы кода
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие настройки движка
func (r *Repository) Get(ctx context.Context) (domain.EngineSettings, error) {
	var s domain.EngineSettings

	query, args, err := psqlbuilder.Select(
		"open_hour",
		"close_hour",
		"min_consecutive_hours",
		"two_cleaner_threshold",
		"max_commit_attempts",
	).
		From("engine_settings").
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return s, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.OpenHour,
		&s.CloseHour,
		&s.MinConsecutiveHours,
		&s.TwoCleanerThreshold,
		&s.MaxCommitAttempts,
	)
	if err == sql.ErrNoRows {
		return s, ErrSettingsNotFound
	}
	if err != nil {
		return s, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: Get - %v", ErrSettingsInvalid, err)
	}

	return s, nil
}
