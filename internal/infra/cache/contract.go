package cache

import "context"

// DayAvailability кешируемое представление доступности одного дня
type DayAvailability struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Unavailable bool   `json:"unavailable"`
	FullyBooked bool   `json:"fullyBooked"`
	FreeSlots   []int  `json:"freeSlots"`
}

// AvailabilityCache кеш доступности дней для календаря.
// GetDay возвращает (nil, nil) при промахе - отсутствие записи не ошибка
type AvailabilityCache interface {
	GetDay(ctx context.Context, date string) (*DayAvailability, error)
	SetDay(ctx context.Context, entry *DayAvailability) error
	InvalidateDay(ctx context.Context, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
