package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	dayRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/dayrecord"
	configRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/serviceconfig"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CleaningService/internal/service/pricing"
)

// базовая задержка между попытками commit; к ней добавляется случайный джиттер
const retryBackoffBase = 25 * time.Millisecond

// UseCase координатор бронирования: расчёт цены и длительности, вывод
// диапазона слотов, optimistic commit в хранилище дней с повторами.
// Снаружи бронирование либо не существует, либо подтверждено - промежуточные
// состояния не видны
type UseCase struct {
	dayRepo      DayRecordRepository
	configRepo   ConfigRepository
	settingsRepo SettingsRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	idGenerator  IDGenerator
	metrics      CommitMetrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	dayRepo DayRecordRepository,
	configRepo ConfigRepository,
	settingsRepo SettingsRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		dayRepo:      dayRepo,
		configRepo:   configRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		idGenerator:  &UUIDGenerator{},
		logger:       logger,
	}
}

// WithMetrics подключает метрики commit; вызывается при включённых метриках
func (uc *UseCase) WithMetrics(m CommitMetrics) *UseCase {
	uc.metrics = m
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, start=%d, service=%s",
		req.Date.Format(domain.DateFormat), req.StartHour, req.ServiceType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Настройки движка; при отсутствии строки настроек - значения по умолчанию
	settings, err := uc.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Конфигурация услуги и расчёт цены/длительности
	cfg, err := uc.configRepo.GetByServiceType(ctx, req.ServiceType)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("CreateBooking: service config not found: service=%s", req.ServiceType)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service config: %v", err)
		return nil, fmt.Errorf("%w: failed to get service config: %v", ErrInternal, err)
	}

	breakdown, err := pricing.Compute(cfg, settings, req.Fields)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidFieldValue) {
			uc.logger.Warn("CreateBooking: pricing rejected fields: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	// 4. Диапазон слотов: {start, ..., start+hours-1}, строго внутри рабочих часов
	duration := breakdown.EstimatedHours
	if err := validateSlotRange(req.StartHour, duration, settings); err != nil {
		uc.logger.Warn("CreateBooking: slot range rejected: %v", err)
		return nil, err
	}
	slots := domain.SlotRange(req.StartHour, duration)

	bookingID := uc.idGenerator.NewID()
	occupant := domain.SlotOccupant{
		BookingID:        bookingID,
		BookedBy:         req.Customer.BookedBy,
		Name:             req.Customer.Name,
		Phone:            req.Customer.Phone,
		BookingTimestamp: now.UTC().Format(domain.TimestampFormat),
		ServiceType:      req.ServiceType,
	}

	// 5. Цикл чтение-проверка-запись с ограниченным числом повторов.
	// Проверка занятости выполняется непосредственно перед commit, а не
	// только при отрисовке календаря - это закрывает гонку между просмотром
	// доступности и отправкой формы
	var committed *domain.DayRecord
	for attempt := 1; attempt <= settings.MaxCommitAttempts; attempt++ {
		day, err := uc.dayRepo.GetByDate(ctx, req.Date)
		if err != nil {
			if !errors.Is(err, dayRepo.ErrDayNotFound) {
				uc.logger.Error("CreateBooking: failed to read day record: %v", err)
				return nil, fmt.Errorf("%w: failed to read day record: %v", ErrInternal, err)
			}
			day = domain.NewDayRecord(req.Date)
		}

		if day.ManualBlock {
			uc.logger.Warn("CreateBooking: day %s is manually blocked", req.Date.Format(domain.DateFormat))
			return nil, ErrSlotNotAvailable
		}

		// Проверка конфликта на момент commit
		for _, hour := range slots {
			if taken, busy := day.BookedSlots[hour]; busy {
				uc.logger.Warn("CreateBooking: slot %d:00 on %s already taken by booking=%s",
					hour, req.Date.Format(domain.DateFormat), taken.BookingID)
				return nil, ErrSlotNotAvailable
			}
		}

		next := day.Clone()
		for _, hour := range slots {
			next.BookedSlots[hour] = occupant
		}
		next.FullyBooked = !domain.ConsecutiveAvailable(next.BookedSlots, settings)

		err = uc.dayRepo.Commit(ctx, next)
		if err == nil {
			if uc.metrics != nil {
				uc.metrics.ObserveCommit("create_booking", "success")
			}
			committed = next
			break
		}
		if !errors.Is(err, dayRepo.ErrVersionConflict) {
			uc.logger.Error("CreateBooking: commit failed: %v", err)
			return nil, fmt.Errorf("%w: commit failed: %v", ErrInternal, err)
		}
		if uc.metrics != nil {
			uc.metrics.IncCommitConflict("create_booking")
		}

		uc.logger.Warn("CreateBooking: version conflict on %s, attempt %d/%d",
			req.Date.Format(domain.DateFormat), attempt, settings.MaxCommitAttempts)
		if attempt < settings.MaxCommitAttempts {
			if err := sleepWithJitter(ctx, attempt); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
	}

	if committed == nil {
		uc.logger.Warn("CreateBooking: retries exhausted for %s", req.Date.Format(domain.DateFormat))
		if uc.metrics != nil {
			uc.metrics.ObserveCommit("create_booking", "exhausted")
		}
		return nil, ErrBusy
	}

	// 6. Инвалидация кеша доступности; ошибка кеша не отменяет бронирование
	if uc.cache != nil {
		if err := uc.cache.InvalidateDay(ctx, req.Date.Format(domain.DateFormat)); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate availability cache: %v", err)
		}
	}

	uc.logger.Info("CreateBooking: confirmed booking id=%s, date=%s, slots=%v, two_cleaners=%t",
		bookingID, req.Date.Format(domain.DateFormat), slots, breakdown.AssignTwoCleaners)

	return &Response{
		ID:          bookingID,
		Date:        req.Date,
		StartHour:   req.StartHour,
		Hours:       duration,
		Slots:       slots,
		ServiceType: req.ServiceType,
		Price:       breakdown,
		Status:      string(domain.StatusConfirmed),
		FullyBooked: committed.FullyBooked,
		CreatedAt:   now,
	}, nil
}

func (uc *UseCase) loadSettings(ctx context.Context) (domain.EngineSettings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateBooking: failed to get engine settings: %v", err)
			return settings, fmt.Errorf("%w: failed to get engine settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultEngineSettings()
	}
	return settings, nil
}

// sleepWithJitter ждёт перед повтором commit: база, растущая с номером
// попытки, плюс случайный джиттер, чтобы конкуренты не синхронизировались
func sleepWithJitter(ctx context.Context, attempt int) error {
	backoff := time.Duration(attempt) * retryBackoffBase
	backoff += time.Duration(rand.Int63n(int64(retryBackoffBase)))

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
