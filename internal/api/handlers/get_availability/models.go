package get_availability

import (
	getAvailability "github.com/m04kA/SMC-CleaningService/internal/usecase/get_availability"
)

// DayResponse доступность одного дня в HTTP ответе
type DayResponse struct {
	Date        string `json:"date"`
	Unavailable bool   `json:"unavailable"`
	FullyBooked bool   `json:"fullyBooked"`
	FreeSlots   []int  `json:"freeSlots"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Days             []DayResponse `json:"days"`
	UnavailableDates []string      `json:"unavailableDates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		freeSlots := day.FreeSlots
		if freeSlots == nil {
			freeSlots = []int{}
		}
		days = append(days, DayResponse{
			Date:        day.Date,
			Unavailable: day.Unavailable,
			FullyBooked: day.FullyBooked,
			FreeSlots:   freeSlots,
		})
	}

	unavailable := resp.UnavailableDates
	if unavailable == nil {
		unavailable = []string{}
	}

	return &AvailabilityResponse{
		Days:             days,
		UnavailableDates: unavailable,
	}
}
