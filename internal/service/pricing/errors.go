package pricing

import "errors"

var (
	// ErrServiceNotFound возвращается, когда тип услуги не настроен
	ErrServiceNotFound = errors.New("pricing: service config not found")

	// ErrInvalidFieldValue возвращается при некорректном значении поля формы:
	// нечисловое значение числового поля или неизвестная опция списка
	ErrInvalidFieldValue = errors.New("pricing: invalid field value")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
