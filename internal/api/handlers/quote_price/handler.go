package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidFieldValue  = "некорректное значение поля формы"
)

type Handler struct {
	pricingService PricingService
	logger         Logger
}

func NewHandler(pricingService PricingService, logger Logger) *Handler {
	return &Handler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// Handle POST /api/v1/price-quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /price-quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	breakdown, err := h.pricingService.Quote(r.Context(), req.ServiceType, req.ToFieldValues())
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrServiceNotFound):
			h.logger.Warn("POST /price-quote - Service not found: service_type=%s", req.ServiceType)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, pricing.ErrInvalidFieldValue):
			h.logger.Warn("POST /price-quote - Invalid field value: service_type=%s, error=%v", req.ServiceType, err)
			handlers.RespondBadRequest(w, msgInvalidFieldValue)

		default:
			h.logger.Error("POST /price-quote - Failed to compute quote: service_type=%s, error=%v", req.ServiceType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /price-quote - Quote computed: service_type=%s, total=%.2f, hours=%d",
		req.ServiceType, breakdown.TotalPrice, breakdown.EstimatedHours)
	handlers.RespondJSON(w, http.StatusOK, FromBreakdown(breakdown))
}
