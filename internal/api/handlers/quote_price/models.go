package quote_price

import (
	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// FieldValueRequest значение одного поля формы
type FieldValueRequest struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	ServiceType string                       `json:"serviceType"`
	Fields      map[string]FieldValueRequest `json:"fields"`
}

// QuotePriceResponse HTTP response model
// Расчёт не резервирует слоты и не сохраняет ничего в хранилище
type QuotePriceResponse struct {
	BasePrice         float64 `json:"basePrice"`
	ItemPrice         float64 `json:"itemPrice"`
	HourlyPrice       float64 `json:"hourlyPrice"`
	TotalPrice        float64 `json:"totalPrice"`
	EstimatedHours    int     `json:"estimatedHours"`
	AssignTwoCleaners bool    `json:"assignTwoCleaners"`
}

// ToFieldValues конвертирует поля запроса в доменную модель
func (r *QuotePriceRequest) ToFieldValues() domain.FieldValues {
	fields := make(domain.FieldValues, len(r.Fields))
	for name, value := range r.Fields {
		fields[name] = domain.FieldValue{
			Value:  value.Value,
			Values: value.Values,
		}
	}
	return fields
}

// FromBreakdown конвертирует доменную детализацию цены в HTTP response
func FromBreakdown(breakdown domain.PriceBreakdown) *QuotePriceResponse {
	return &QuotePriceResponse{
		BasePrice:         breakdown.BasePrice,
		ItemPrice:         breakdown.ItemPrice,
		HourlyPrice:       breakdown.HourlyPrice,
		TotalPrice:        breakdown.TotalPrice,
		EstimatedHours:    breakdown.EstimatedHours,
		AssignTwoCleaners: breakdown.AssignTwoCleaners,
	}
}
