package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	configRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/serviceconfig"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
)

// Service сервис расчёта цены. Используется формами для живого пересчёта
// стоимости до подтверждения; координатор бронирования вызывает тот же
// Compute, поэтому котировка и цена на момент подтверждения совпадают
// (с точностью до настроек, которые могли измениться между запросами -
// это допустимое устаревание, а не ошибка)
type Service struct {
	configRepo   ConfigRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расчёта цены
func NewService(configRepo ConfigRepository, settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		configRepo:   configRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Quote рассчитывает цену и длительность для типа услуги и значений полей
func (s *Service) Quote(ctx context.Context, serviceType string, fields domain.FieldValues) (domain.PriceBreakdown, error) {
	s.logger.Info("Quote: service_type=%s, fields=%d", serviceType, len(fields))

	cfg, err := s.configRepo.GetByServiceType(ctx, serviceType)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Quote: service config not found: service_type=%s", serviceType)
			return domain.PriceBreakdown{}, ErrServiceNotFound
		}
		s.logger.Error("Quote: failed to get service config: service_type=%s, error=%v", serviceType, err)
		return domain.PriceBreakdown{}, fmt.Errorf("%w: failed to get service config: %v", ErrInternal, err)
	}

	engineSettings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Quote: failed to get engine settings: %v", err)
			return domain.PriceBreakdown{}, fmt.Errorf("%w: failed to get engine settings: %v", ErrInternal, err)
		}
		engineSettings = domain.DefaultEngineSettings()
	}

	breakdown, err := Compute(cfg, engineSettings, fields)
	if err != nil {
		s.logger.Warn("Quote: compute failed: service_type=%s, error=%v", serviceType, err)
		return domain.PriceBreakdown{}, err
	}

	s.logger.Info("Quote: service_type=%s, total=%.2f, hours=%d, two_cleaners=%t",
		serviceType, breakdown.TotalPrice, breakdown.EstimatedHours, breakdown.AssignTwoCleaners)
	return breakdown, nil
}
