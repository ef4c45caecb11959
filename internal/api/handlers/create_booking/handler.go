package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDate        = "некорректная дата бронирования"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotOutOfRange     = "запрошенное время выходит за рабочие часы"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgBusy               = "сервис перегружен, повторите попытку позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, start_hour=%d", req.Date, req.StartHour)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_type=%s", req.ServiceType)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSlotOutOfRange):
			h.logger.Warn("POST /bookings - Slot out of range: date=%s, start_hour=%d", req.Date, req.StartHour)
			handlers.RespondBadRequest(w, msgSlotOutOfRange)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrBusy):
			h.logger.Warn("POST /bookings - Commit attempts exhausted: date=%s, start_hour=%d", req.Date, req.StartHour)
			handlers.RespondServiceUnavailable(w, msgBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, start_hour=%d, error=%v",
				req.Date, req.StartHour, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, date=%s, start_hour=%d, hours=%d",
		result.ID, req.Date, result.StartHour, result.Hours)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
