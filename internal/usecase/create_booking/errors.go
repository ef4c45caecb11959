package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrServiceNotFound возвращается, когда тип услуги не настроен
	ErrServiceNotFound = errors.New("create_booking: service config not found")

	// ErrSlotOutOfRange возвращается, когда начальный слот вне рабочих часов
	// или рассчитанная длительность выходит за время закрытия.
	// Бронирование отклоняется целиком - слоты никогда не усекаются молча
	ErrSlotOutOfRange = errors.New("create_booking: slot range is outside working hours")

	// ErrSlotNotAvailable возвращается, когда хотя бы один требуемый слот
	// занят на момент commit или день заблокирован вручную.
	// Пользователь должен запросить доступность заново и выбрать другое время
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrBusy возвращается после исчерпания попыток optimistic commit
	ErrBusy = errors.New("create_booking: too many concurrent updates, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
