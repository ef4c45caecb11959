package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-CleaningService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Removed     int    `json:"removed"`
	FullyBooked bool   `json:"fullyBooked"`
	Status      string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Removed:     resp.Removed,
		FullyBooked: resp.FullyBooked,
		Status:      string(resp.Status),
	}
}
