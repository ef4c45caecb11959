package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	dayRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/dayrecord"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
)

const retryBackoffBase = 25 * time.Millisecond

// Request модель запроса на отмену бронирования
type Request struct {
	Date      time.Time // Дата бронирования
	BookingID string    // Идентификатор бронирования
}

// Response модель ответа отмены
// Removed = 0 означает, что бронирование не найдено: повторная отмена
// безопасна и не является ошибкой, итоговое состояние одно и то же
type Response struct {
	Removed     int                  // Сколько слотов освобождено
	FullyBooked bool                 // Флаг дня после отмены
	Status      domain.BookingStatus // Итоговый статус бронирования
}

// UseCase координатор отмены: обратная операция к бронированию.
// Убирает все слоты с указанным booking id, пересчитывает флаг полной
// занятости и фиксирует результат тем же optimistic commit с повторами
type UseCase struct {
	dayRepo      DayRecordRepository
	settingsRepo SettingsRepository
	cache        AvailabilityCache
	metrics      CommitMetrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	dayRepo DayRecordRepository,
	settingsRepo SettingsRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		dayRepo:      dayRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		logger:       logger,
	}
}

// WithMetrics подключает метрики commit; вызывается при включённых метриках
func (uc *UseCase) WithMetrics(m CommitMetrics) *UseCase {
	uc.metrics = m
	return uc
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: date=%s, booking=%s", req.Date.Format(domain.DateFormat), req.BookingID)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CancelBooking: failed to get engine settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get engine settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultEngineSettings()
	}

	for attempt := 1; attempt <= settings.MaxCommitAttempts; attempt++ {
		day, err := uc.dayRepo.GetByDate(ctx, req.Date)
		if err != nil {
			if errors.Is(err, dayRepo.ErrDayNotFound) {
				// Дня нет - отменять нечего, повторная отмена безопасна
				uc.logger.Info("CancelBooking: day %s has no record, nothing to cancel",
					req.Date.Format(domain.DateFormat))
				return &Response{Removed: 0, FullyBooked: false, Status: domain.StatusCancelled}, nil
			}
			uc.logger.Error("CancelBooking: failed to read day record: %v", err)
			return nil, fmt.Errorf("%w: failed to read day record: %v", ErrInternal, err)
		}

		hours := day.BookedSlots.BookingHours(req.BookingID)
		if len(hours) == 0 {
			uc.logger.Info("CancelBooking: booking=%s not found on %s, nothing to cancel",
				req.BookingID, req.Date.Format(domain.DateFormat))
			return &Response{Removed: 0, FullyBooked: day.FullyBooked, Status: domain.StatusCancelled}, nil
		}

		next := day.Clone()
		for _, hour := range hours {
			delete(next.BookedSlots, hour)
		}
		next.FullyBooked = !domain.ConsecutiveAvailable(next.BookedSlots, settings)

		// День без слотов и без ручной блокировки удаляется целиком
		if next.IsEmpty() && !next.ManualBlock {
			err = uc.dayRepo.Delete(ctx, req.Date, day.Version)
		} else {
			err = uc.dayRepo.Commit(ctx, next)
		}

		if err == nil {
			if uc.metrics != nil {
				uc.metrics.ObserveCommit("cancel_booking", "success")
			}
			if uc.cache != nil {
				if cacheErr := uc.cache.InvalidateDay(ctx, req.Date.Format(domain.DateFormat)); cacheErr != nil {
					uc.logger.Warn("CancelBooking: failed to invalidate availability cache: %v", cacheErr)
				}
			}
			uc.logger.Info("CancelBooking: booking=%s cancelled, freed %d slots on %s",
				req.BookingID, len(hours), req.Date.Format(domain.DateFormat))
			return &Response{Removed: len(hours), FullyBooked: next.FullyBooked, Status: domain.StatusCancelled}, nil
		}

		if !errors.Is(err, dayRepo.ErrVersionConflict) {
			uc.logger.Error("CancelBooking: commit failed: %v", err)
			return nil, fmt.Errorf("%w: commit failed: %v", ErrInternal, err)
		}
		if uc.metrics != nil {
			uc.metrics.IncCommitConflict("cancel_booking")
		}

		uc.logger.Warn("CancelBooking: version conflict on %s, attempt %d/%d",
			req.Date.Format(domain.DateFormat), attempt, settings.MaxCommitAttempts)
		if attempt < settings.MaxCommitAttempts {
			if err := sleepWithJitter(ctx, attempt); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
	}

	uc.logger.Warn("CancelBooking: retries exhausted for %s", req.Date.Format(domain.DateFormat))
	if uc.metrics != nil {
		uc.metrics.ObserveCommit("cancel_booking", "exhausted")
	}
	return nil, ErrBusy
}

// sleepWithJitter ждёт перед повтором commit
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
