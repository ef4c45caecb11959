package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// Compute рассчитывает длительность и цену бронирования по конфигурации
// услуги и значениям полей формы. Функция чистая и детерминированная:
// одинаковые аргументы всегда дают побитово одинаковый результат - это
// обязательное свойство, на него опирается сверка цены при подтверждении.
//
// Алгоритм:
//  1. price = BasePrice, hours = 0
//  2. Вклад каждого тарифицируемого поля в порядке объявления
//  3. Правила списком, каждое включённое правило с совпавшим условием
//     мутирует накопитель
//  4. Нижняя граница hours = MinHours
//  5. Почасовая часть цены = hours × HourlyRate; estimatedHours = ceil(hours)
//  6. Порог двух клинеров: estimatedHours > threshold - назначаются два
//     клинера, часы пересчитываются как ceil(estimated / 1.75), почасовая
//     часть цены масштабируется на adjusted/estimated. Фиксированные
//     надбавки за позиции не масштабируются
func Compute(cfg *domain.ServiceConfig, settings domain.EngineSettings, fields domain.FieldValues) (domain.PriceBreakdown, error) {
	// flat - базовая цена плюс фиксированные надбавки; почасовая часть
	// считается отдельно, чтобы масштабирование двух клинеров не трогало
	// надбавки за позиции
	flat := cfg.BasePrice
	hours := 0.0

	for i := range cfg.Fields {
		field := &cfg.Fields[i]
		if !field.PricingEnabled {
			continue
		}
		value, ok := fields[field.Name]
		if !ok || value.IsEmpty() {
			continue
		}

		switch field.Type {
		case domain.FieldTypeNumber:
			n, err := value.Number()
			if err != nil {
				return domain.PriceBreakdown{}, fmt.Errorf("%w: field %q: %v", ErrInvalidFieldValue, field.Name, err)
			}
			flat += n * field.PricePerUnit
			hours += n * field.TimePerUnit

		case domain.FieldTypeSelect:
			opt, err := findOption(field, value.Value)
			if err != nil {
				return domain.PriceBreakdown{}, err
			}
			flat += opt.PriceAdd
			if opt.PriceMultiplier > 0 {
				flat *= opt.PriceMultiplier
			}
			hours += opt.TimeAdd

		case domain.FieldTypeMultiSelect:
			for _, selected := range value.Values {
				opt, err := findOption(field, selected)
				if err != nil {
					return domain.PriceBreakdown{}, err
				}
				flat += opt.PriceAdd
				hours += opt.TimeAdd
			}

		case domain.FieldTypeChoice:
			opt, err := findOption(field, value.Value)
			if err != nil {
				return domain.PriceBreakdown{}, err
			}
			if opt.PriceMultiplier > 0 {
				flat *= opt.PriceMultiplier
			}

		case domain.FieldTypeText:
			// Текстовые поля не тарифицируются
		}
	}

	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if !rule.Enabled || !conditionMatches(rule, fields) {
			continue
		}
		switch rule.Action {
		case domain.ActionAddPrice:
			flat += rule.Amount
		case domain.ActionMultiplyPrice:
			flat *= rule.Amount
		case domain.ActionAddTime:
			hours += rule.Amount
		case domain.ActionMultiplyTime:
			hours *= rule.Amount
		}
	}

	if hours < cfg.MinHours {
		hours = cfg.MinHours
	}

	hourly := hours * cfg.HourlyRate
	estimated := int(math.Ceil(hours))
	if estimated < 1 {
		estimated = 1
	}

	threshold := settings.TwoCleanerThreshold
	if cfg.TwoCleanerThreshold != nil {
		threshold = *cfg.TwoCleanerThreshold
	}

	assignTwo := estimated > threshold
	if assignTwo {
		adjusted := int(math.Ceil(float64(estimated) / domain.TwoCleanerSpeedup))
		hourly *= float64(adjusted) / float64(estimated)
		estimated = adjusted
	}

	return domain.PriceBreakdown{
		BasePrice:         cfg.BasePrice,
		ItemPrice:         flat - cfg.BasePrice,
		HourlyPrice:       hourly,
		TotalPrice:        flat + hourly,
		EstimatedHours:    estimated,
		AssignTwoCleaners: assignTwo,
	}, nil
}

func findOption(field *domain.FieldConfig, value string) (*domain.FieldOption, error) {
	for i := range field.Options {
		if field.Options[i].Value == value {
			return &field.Options[i], nil
		}
	}
	return nil, fmt.Errorf("%w: field %q: unknown option %q", ErrInvalidFieldValue, field.Name, value)
}

// conditionMatches проверяет условие правила против значений полей.
// Несопоставимые значения (нечисловые при числовом сравнении) считаются
// несовпадением, а не ошибкой: правило просто не применяется
func conditionMatches(rule *domain.PricingRule, fields domain.FieldValues) bool {
	value := fields[rule.Field]

	switch rule.Operator {
	case domain.OperatorEquals:
		return value.Value == rule.Value

	case domain.OperatorGreaterThan, domain.OperatorLessThan:
		left, err := value.Number()
		if err != nil {
			return false
		}
		right, err := strconv.ParseFloat(rule.Value, 64)
		if err != nil {
			return false
		}
		if rule.Operator == domain.OperatorGreaterThan {
			return left > right
		}
		return left < right

	case domain.OperatorContains:
		if strings.Contains(value.Value, rule.Value) {
			return true
		}
		for _, v := range value.Values {
			if v == rule.Value {
				return true
			}
		}
		return false

	case domain.OperatorNotEmpty:
		return !value.IsEmpty()
	}

	return false
}
