package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// Customer контактные данные заказчика, сохраняемые в каждом занятом слоте
type Customer struct {
	BookedBy string // контактный идентификатор (email или телефон)
	Name     string
	Phone    string
}

// Request модель запроса на создание бронирования
type Request struct {
	Date        time.Time          // Дата бронирования (без времени)
	StartHour   int                // Начальный час слота (например, 9 для 9:00)
	ServiceType string             // Тип услуги (residential, commercial, ...)
	Fields      domain.FieldValues // Значения полей формы для расчёта цены
	Customer    Customer           // Контакты заказчика
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string                // Идентификатор бронирования (внешний order id)
	Date        time.Time             // Дата бронирования
	StartHour   int                   // Начальный час
	Hours       int                   // Итоговая длительность в часах (слотах)
	Slots       []int                 // Занятые часы
	ServiceType string                // Тип услуги
	Price       domain.PriceBreakdown // Детализация цены
	Status      string                // Статус бронирования
	FullyBooked bool                  // Флаг дня после бронирования
	CreatedAt   time.Time             // Время создания
}
