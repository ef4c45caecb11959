package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Запрос отклоняется до любого обращения к хранилищу
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartHour < 0 || req.StartHour > 23 {
		return fmt.Errorf("%w: startHour must be within 0..23", ErrInvalidInput)
	}

	if req.ServiceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}

	if req.Customer.Name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if req.Customer.BookedBy == "" {
		return fmt.Errorf("%w: customer contact is required", ErrInvalidInput)
	}

	if len(req.Customer.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if len(req.Customer.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: customer phone is too long", ErrInvalidInput)
	}

	if len(req.Customer.BookedBy) > domain.MaxContactLength {
		return fmt.Errorf("%w: customer contact is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotRange проверяет, что весь диапазон слотов помещается в рабочие
// часы. Диапазон, выходящий за время закрытия, отклоняется целиком
func validateSlotRange(startHour, hours int, settings domain.EngineSettings) error {
	if !settings.ContainsHour(startHour) {
		return fmt.Errorf("%w: start hour %d is outside %d..%d",
			ErrSlotOutOfRange, startHour, settings.OpenHour, settings.CloseHour)
	}
	if lastHour := startHour + hours - 1; lastHour > settings.CloseHour {
		return fmt.Errorf("%w: booking of %d hours starting at %d:00 ends after %d:00",
			ErrSlotOutOfRange, hours, startHour, settings.CloseHour+1)
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
