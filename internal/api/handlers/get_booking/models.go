package get_booking

import (
	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	StartHour   int    `json:"startHour"`
	EndHour     int    `json:"endHour"`
	Hours       int    `json:"hours"`
	Slots       []int  `json:"slots"`
	ServiceType string `json:"serviceType"`
	Status      string `json:"status"`
	BookedBy    string `json:"bookedBy"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	BookedAt    string `json:"bookedAt"`
}

// FromBooking конвертирует доменное бронирование в HTTP response
func FromBooking(booking *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          booking.ID,
		Date:        booking.Date.Format(domain.DateFormat),
		StartHour:   booking.StartHour,
		EndHour:     booking.EndHour(),
		Hours:       booking.Hours,
		Slots:       booking.Slots,
		ServiceType: booking.ServiceType,
		Status:      string(booking.Status),
		BookedBy:    booking.Customer.BookedBy,
		Name:        booking.Customer.Name,
		Phone:       booking.Customer.Phone,
		BookedAt:    booking.CreatedAt.UTC().Format(domain.TimestampFormat),
	}
}
