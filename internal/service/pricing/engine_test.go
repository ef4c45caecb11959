package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
)

func testConfig() *domain.ServiceConfig {
	return &domain.ServiceConfig{
		ServiceType: "regular_cleaning",
		Name:        "Регулярная уборка",
		BasePrice:   1000,
		HourlyRate:  800,
		MinHours:    2,
		Fields: []domain.FieldConfig{
			{
				Name:           "rooms",
				Type:           domain.FieldTypeNumber,
				PricingEnabled: true,
				TimePerUnit:    0.75,
			},
			{
				Name:           "bathrooms",
				Type:           domain.FieldTypeNumber,
				PricingEnabled: true,
				PricePerUnit:   100,
				TimePerUnit:    0.5,
			},
			{
				Name:           "windows",
				Type:           domain.FieldTypeSelect,
				PricingEnabled: true,
				Options: []domain.FieldOption{
					{Value: "none"},
					{Value: "few", PriceAdd: 300, TimeAdd: 0.5},
					{Value: "many", PriceAdd: 600, TimeAdd: 1},
				},
			},
			{
				Name:           "extras",
				Type:           domain.FieldTypeMultiSelect,
				PricingEnabled: true,
				Options: []domain.FieldOption{
					{Value: "fridge", PriceAdd: 400, TimeAdd: 0.5},
					{Value: "oven", PriceAdd: 350, TimeAdd: 0.5},
				},
			},
			{
				Name:           "dirtiness",
				Type:           domain.FieldTypeChoice,
				PricingEnabled: true,
				Options: []domain.FieldOption{
					{Value: "normal"},
					{Value: "heavy", PriceMultiplier: 1.5},
				},
			},
			{
				Name: "comment",
				Type: domain.FieldTypeText,
			},
		},
		Rules: []domain.PricingRule{
			{
				Field:    "rooms",
				Operator: domain.OperatorGreaterThan,
				Value:    "4",
				Action:   domain.ActionMultiplyPrice,
				Amount:   1.1,
				Enabled:  true,
			},
			{
				Field:    "extras",
				Operator: domain.OperatorContains,
				Value:    "oven",
				Action:   domain.ActionAddTime,
				Amount:   0.25,
				Enabled:  true,
			},
			{
				Field:    "comment",
				Operator: domain.OperatorNotEmpty,
				Action:   domain.ActionAddPrice,
				Amount:   500,
				Enabled:  false, // выключенное правило не применяется
			},
		},
		Enabled: true,
	}
}

func TestComputeBaseOnly(t *testing.T) {
	cfg := testConfig()
	settings := domain.DefaultEngineSettings()

	got, err := Compute(cfg, settings, domain.FieldValues{})
	require.NoError(t, err)

	// Нет вкладов полей: hours поднимается до MinHours = 2
	assert.Equal(t, 1000.0, got.BasePrice)
	assert.Equal(t, 0.0, got.ItemPrice)
	assert.Equal(t, 1600.0, got.HourlyPrice)
	assert.Equal(t, 2600.0, got.TotalPrice)
	assert.Equal(t, 2, got.EstimatedHours)
	assert.False(t, got.AssignTwoCleaners)
}

func TestComputeFieldContributions(t *testing.T) {
	cfg := testConfig()
	settings := domain.DefaultEngineSettings()

	t.Run("NumberField", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"rooms":     {Value: "2"},
			"bathrooms": {Value: "1"},
		})
		require.NoError(t, err)

		// hours = 2*0.75 + 1*0.5 = 2.0, flat добавка = 1*100
		assert.Equal(t, 100.0, got.ItemPrice)
		assert.Equal(t, 1600.0, got.HourlyPrice)
		assert.Equal(t, 2, got.EstimatedHours)
	})

	t.Run("SelectOption", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"windows": {Value: "many"},
		})
		require.NoError(t, err)

		assert.Equal(t, 600.0, got.ItemPrice)
		assert.Equal(t, 2, got.EstimatedHours) // 1 час окон < MinHours
	})

	t.Run("MultiSelectSumsOptions", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"extras": {Values: []string{"fridge", "oven"}},
		})
		require.NoError(t, err)

		// 400 + 350 надбавки; 0.5 + 0.5 + 0.25 (правило oven) часов, floor до 2
		assert.Equal(t, 750.0, got.ItemPrice)
		assert.Equal(t, 2, got.EstimatedHours)
	})

	t.Run("ChoiceMultiplier", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"bathrooms": {Value: "1"},
			"dirtiness": {Value: "heavy"},
		})
		require.NoError(t, err)

		// (1000 + 100) * 1.5 = 1650; ItemPrice = 1650 - 1000
		assert.Equal(t, 650.0, got.ItemPrice)
	})

	t.Run("TextFieldNeverPriced", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"comment": {Value: "позвонить за час"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.ItemPrice)
	})

	t.Run("UnknownOptionRejected", func(t *testing.T) {
		_, err := Compute(cfg, settings, domain.FieldValues{
			"windows": {Value: "all-of-them"},
		})
		assert.ErrorIs(t, err, ErrInvalidFieldValue)
	})

	t.Run("NonNumericNumberRejected", func(t *testing.T) {
		_, err := Compute(cfg, settings, domain.FieldValues{
			"rooms": {Value: "two"},
		})
		assert.ErrorIs(t, err, ErrInvalidFieldValue)
	})
}

func TestComputeRules(t *testing.T) {
	cfg := testConfig()
	settings := domain.DefaultEngineSettings()

	t.Run("GreaterThanTriggers", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"rooms": {Value: "5"},
		})
		require.NoError(t, err)

		// flat = 1000 * 1.1; hours = 5*0.75 = 3.75 -> estimated 4
		assert.InDelta(t, 100.0, got.ItemPrice, 1e-9)
		assert.InDelta(t, 3000.0, got.HourlyPrice, 1e-9)
		assert.Equal(t, 4, got.EstimatedHours)
	})

	t.Run("GreaterThanBoundaryDoesNotTrigger", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"rooms": {Value: "4"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.ItemPrice)
	})

	t.Run("DisabledRuleIgnored", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"comment": {Value: "есть кот"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.ItemPrice)
	})

	t.Run("NonComparableValueIsNoMatch", func(t *testing.T) {
		// Нечисловое значение при числовом сравнении: правило не применяется,
		// но вклад поля отклоняется раньше, поэтому поле без тарификации
		custom := testConfig()
		custom.Fields[0].PricingEnabled = false

		got, err := Compute(custom, settings, domain.FieldValues{
			"rooms": {Value: "many"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.ItemPrice)
	})
}

func TestComputeTwoCleanerThreshold(t *testing.T) {
	cfg := testConfig()
	settings := domain.DefaultEngineSettings() // порог 4

	t.Run("AboveThresholdRescalesHourlyOnly", func(t *testing.T) {
		got, err := Compute(cfg, settings, domain.FieldValues{
			"rooms":   {Value: "8"},
			"windows": {Value: "few"},
		})
		require.NoError(t, err)

		// hours = 8*0.75 + 0.5 = 6.5 -> estimated 7, adjusted = ceil(7/1.75) = 4
		require.True(t, got.AssignTwoCleaners)
		assert.Equal(t, 4, got.EstimatedHours)

		// Почасовая часть масштабируется на 4/7; flat-часть не трогается:
		// (1000 + 300 за окна) * 1.1 по правилу rooms > 4 = 1430
		assert.InDelta(t, 6.5*800*4.0/7.0, got.HourlyPrice, 1e-9)
		assert.InDelta(t, 430.0, got.ItemPrice, 1e-9)
		assert.InDelta(t, 1430.0+got.HourlyPrice, got.TotalPrice, 1e-9)
	})

	t.Run("AtThresholdStaysSingleCleaner", func(t *testing.T) {
		// ровно 4 часа: порог строгий, один клинер
		got, err := Compute(cfg, settings, domain.FieldValues{
			"bathrooms": {Value: "8"}, // 8*0.5 = 4 часа
		})
		require.NoError(t, err)
		assert.False(t, got.AssignTwoCleaners)
		assert.Equal(t, 4, got.EstimatedHours)
	})

	t.Run("ServiceOverrideWins", func(t *testing.T) {
		custom := testConfig()
		custom.TwoCleanerThreshold = ptr.Ptr(2)

		got, err := Compute(custom, settings, domain.FieldValues{
			"rooms": {Value: "4"}, // 3 часа
		})
		require.NoError(t, err)
		assert.True(t, got.AssignTwoCleaners)
		assert.Equal(t, 2, got.EstimatedHours) // ceil(3/1.75) = 2
	})
}

func TestComputeDeterministic(t *testing.T) {
	cfg := testConfig()
	settings := domain.DefaultEngineSettings()
	fields := domain.FieldValues{
		"rooms":     {Value: "5"},
		"bathrooms": {Value: "2"},
		"windows":   {Value: "few"},
		"extras":    {Values: []string{"fridge", "oven"}},
		"dirtiness": {Value: "heavy"},
	}

	first, err := Compute(cfg, settings, fields)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Compute(cfg, settings, fields)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
