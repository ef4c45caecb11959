package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrRangeTooWide возвращается, когда запрошенный диапазон дат
	// превышает допустимый размер
	ErrRangeTooWide = errors.New("get_availability: date range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
