package cancel_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-CleaningService/internal/usecase/cancel_booking"
)

const (
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBookingID  = "не указан идентификатор бронирования"
	msgBusy              = "сервис перегружен, повторите попытку позже"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{date}/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /bookings/{date}/{bookingId}/cancel - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	bookingID := vars["bookingId"]
	if bookingID == "" {
		h.logger.Warn("POST /bookings/{date}/{bookingId}/cancel - Empty booking id")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		Date:      date,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{date}/{bookingId}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, cancelBooking.ErrBusy):
			h.logger.Warn("POST /bookings/{date}/{bookingId}/cancel - Commit attempts exhausted: date=%s, booking_id=%s",
				vars["date"], bookingID)
			handlers.RespondServiceUnavailable(w, msgBusy)

		default:
			h.logger.Error("POST /bookings/{date}/{bookingId}/cancel - Failed to cancel: date=%s, booking_id=%s, error=%v",
				vars["date"], bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{date}/{bookingId}/cancel - Booking cancelled: date=%s, booking_id=%s, removed=%d",
		vars["date"], bookingID, result.Removed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
