package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	getAvailability "github.com/m04kA/SMC-CleaningService/internal/usecase/get_availability"
)

const (
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgRangeTooWide      = "слишком широкий диапазон дат"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid 'from' date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid 'to' date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		From: from,
		To:   to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrRangeTooWide):
			h.logger.Warn("GET /availability - Range too wide: from=%s, to=%s", query.Get("from"), query.Get("to"))
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid range: from=%s, to=%s", query.Get("from"), query.Get("to"))
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /availability - Failed to get availability: from=%s, to=%s, error=%v",
				query.Get("from"), query.Get("to"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Days returned: from=%s, to=%s, days=%d",
		query.Get("from"), query.Get("to"), len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
