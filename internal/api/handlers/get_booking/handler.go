package get_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/service/bookings"
)

const (
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBookingNotFound   = "бронирование не найдено"
)

type Handler struct {
	bookingsService BookingsService
	logger          Logger
}

func NewHandler(bookingsService BookingsService, logger Logger) *Handler {
	return &Handler{
		bookingsService: bookingsService,
		logger:          logger,
	}
}

// Handle GET /api/v1/bookings/{date}/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /bookings/{date}/{bookingId} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	booking, err := h.bookingsService.GetByDateAndID(r.Context(), date, vars["bookingId"])
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{date}/{bookingId} - Not found: date=%s, booking_id=%s",
				vars["date"], vars["bookingId"])
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/{date}/{bookingId} - Failed to get booking: date=%s, booking_id=%s, error=%v",
				vars["date"], vars["bookingId"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{date}/{bookingId} - Booking found: booking_id=%s, hours=%d", booking.ID, booking.Hours)
	handlers.RespondJSON(w, http.StatusOK, FromBooking(booking))
}
