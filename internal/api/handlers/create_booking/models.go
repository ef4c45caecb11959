package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	createBooking "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
)

// FieldValueRequest значение одного поля формы
type FieldValueRequest struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// CustomerRequest контактные данные заказчика
type CustomerRequest struct {
	BookedBy string `json:"bookedBy"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date        string                       `json:"date"`      // "2025-10-15"
	StartHour   int                          `json:"startHour"` // 9 для 9:00
	ServiceType string                       `json:"serviceType"`
	Fields      map[string]FieldValueRequest `json:"fields"`
	Customer    CustomerRequest              `json:"customer"`
}

// PriceBreakdownResponse детализация цены в HTTP ответе
type PriceBreakdownResponse struct {
	BasePrice         float64 `json:"basePrice"`
	ItemPrice         float64 `json:"itemPrice"`
	HourlyPrice       float64 `json:"hourlyPrice"`
	TotalPrice        float64 `json:"totalPrice"`
	EstimatedHours    int     `json:"estimatedHours"`
	AssignTwoCleaners bool    `json:"assignTwoCleaners"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string                 `json:"id"`
	Date        string                 `json:"date"`
	StartHour   int                    `json:"startHour"`
	Hours       int                    `json:"hours"`
	Slots       []int                  `json:"slots"`
	ServiceType string                 `json:"serviceType"`
	Price       PriceBreakdownResponse `json:"price"`
	Status      string                 `json:"status"`
	FullyBooked bool                   `json:"fullyBooked"`
	CreatedAt   string                 `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	fields := make(domain.FieldValues, len(r.Fields))
	for name, value := range r.Fields {
		fields[name] = domain.FieldValue{
			Value:  value.Value,
			Values: value.Values,
		}
	}

	return &createBooking.Request{
		Date:        date,
		StartHour:   r.StartHour,
		ServiceType: r.ServiceType,
		Fields:      fields,
		Customer: createBooking.Customer{
			BookedBy: r.Customer.BookedBy,
			Name:     r.Customer.Name,
			Phone:    r.Customer.Phone,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartHour:   resp.StartHour,
		Hours:       resp.Hours,
		Slots:       resp.Slots,
		ServiceType: resp.ServiceType,
		Price: PriceBreakdownResponse{
			BasePrice:         resp.Price.BasePrice,
			ItemPrice:         resp.Price.ItemPrice,
			HourlyPrice:       resp.Price.HourlyPrice,
			TotalPrice:        resp.Price.TotalPrice,
			EstimatedHours:    resp.Price.EstimatedHours,
			AssignTwoCleaners: resp.Price.AssignTwoCleaners,
		},
		Status:      resp.Status,
		FullyBooked: resp.FullyBooked,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
