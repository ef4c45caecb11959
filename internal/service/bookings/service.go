package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	dayRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/dayrecord"
)

// Service сервис чтения бронирований. Отдельной таблицы бронирований нет:
// бронирование существует только как группа слотов с общим booking id,
// сервис восстанавливает из неё полный временной диапазон
type Service struct {
	dayRepo DayRecordRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(dayRepo DayRecordRepository, logger Logger) *Service {
	return &Service{
		dayRepo: dayRepo,
		logger:  logger,
	}
}

// GetByDateAndID восстанавливает бронирование по дате и идентификатору
func (s *Service) GetByDateAndID(ctx context.Context, date time.Time, bookingID string) (*domain.Booking, error) {
	s.logger.Info("GetByDateAndID: date=%s, booking=%s", date.Format(domain.DateFormat), bookingID)

	day, err := s.dayRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			s.logger.Warn("GetByDateAndID: day %s has no record", date.Format(domain.DateFormat))
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByDateAndID: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByDateAndID - repository error: %v", ErrInternal, err)
	}

	hours := day.BookedSlots.BookingHours(bookingID)
	if len(hours) == 0 {
		s.logger.Warn("GetByDateAndID: booking=%s not found on %s", bookingID, date.Format(domain.DateFormat))
		return nil, ErrBookingNotFound
	}

	occupant := day.BookedSlots[hours[0]]

	// Слоты пишутся только для подтверждённых бронирований, поэтому метка
	// времени всегда в формате RFC3339; повреждённое значение не фатально
	createdAt, err := time.Parse(domain.TimestampFormat, occupant.BookingTimestamp)
	if err != nil {
		s.logger.Warn("GetByDateAndID: malformed booking timestamp %q for booking=%s",
			occupant.BookingTimestamp, bookingID)
	}

	return &domain.Booking{
		ID:          bookingID,
		Date:        date,
		StartHour:   hours[0],
		Hours:       len(hours),
		ServiceType: occupant.ServiceType,
		Slots:       hours,
		Customer: domain.CustomerRef{
			BookedBy: occupant.BookedBy,
			Name:     occupant.Name,
			Phone:    occupant.Phone,
		},
		Status:    domain.StatusConfirmed,
		CreatedAt: createdAt,
	}, nil
}
