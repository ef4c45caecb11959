package quote_price

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

type PricingService interface {
	Quote(ctx context.Context, serviceType string, fields domain.FieldValues) (domain.PriceBreakdown, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
