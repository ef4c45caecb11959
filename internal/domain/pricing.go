package domain

import (
	"fmt"
	"strconv"
)

// FieldType enumerates the booking-form field kinds the pricing engine
// understands.
type FieldType string

const (
	FieldTypeNumber      FieldType = "number"      // numeric input: value × per-unit price and time
	FieldTypeSelect      FieldType = "select"      // single select: option addend / multiplier / time
	FieldTypeMultiSelect FieldType = "multiselect" // checkbox group: sum of selected options
	FieldTypeChoice      FieldType = "choice"      // exclusive choice: multiplicative modifier only
	FieldTypeText        FieldType = "text"        // free text, never priced
)

// FieldOption is one selectable option of a select/multiselect/choice field.
type FieldOption struct {
	Value           string  `json:"value"`
	PriceAdd        float64 `json:"priceAdd,omitempty"`
	PriceMultiplier float64 `json:"priceMultiplier,omitempty"` // 0 means "no modifier"
	TimeAdd         float64 `json:"timeAdd,omitempty"`         // hours
}

// FieldConfig describes one form field and its pricing metadata.
// Fields are applied in declaration order, which is part of the pricing
// contract (determinism).
type FieldConfig struct {
	Name           string        `json:"name"`
	Type           FieldType     `json:"type"`
	PricingEnabled bool          `json:"pricingEnabled"`
	PricePerUnit   float64       `json:"pricePerUnit,omitempty"` // number fields
	TimePerUnit    float64       `json:"timePerUnit,omitempty"`  // number fields, hours per unit
	Options        []FieldOption `json:"options,omitempty"`
}

// RuleOperator enumerates pricing-rule condition operators.
type RuleOperator string

const (
	OperatorEquals      RuleOperator = "equals"
	OperatorGreaterThan RuleOperator = "greater_than"
	OperatorLessThan    RuleOperator = "less_than"
	OperatorContains    RuleOperator = "contains"
	OperatorNotEmpty    RuleOperator = "not_empty"
)

// RuleAction enumerates pricing-rule actions.
type RuleAction string

const (
	ActionAddPrice      RuleAction = "add_price"
	ActionMultiplyPrice RuleAction = "multiply_price"
	ActionAddTime       RuleAction = "add_time"
	ActionMultiplyTime  RuleAction = "multiply_time"
)

// PricingRule is a condition/action pair applied to booking-request fields.
// Rules are evaluated in list order; each enabled rule whose condition
// matches mutates the running (price, hours) accumulator.
type PricingRule struct {
	Field    string       `json:"field"`
	Operator RuleOperator `json:"operator"`
	Value    string       `json:"value,omitempty"`
	Action   RuleAction   `json:"action"`
	Amount   float64      `json:"amount"`
	Enabled  bool         `json:"enabled"`
}

// ServiceConfig carries everything the pricing engine needs for one service
// type. TwoCleanerThreshold overrides the engine-wide setting when non-nil.
type ServiceConfig struct {
	ID                  int64
	ServiceType         string
	Name                string
	BasePrice           float64
	HourlyRate          float64
	MinHours            float64 // floor for accumulated hours (e.g. 2 residential, 3 commercial)
	TwoCleanerThreshold *int
	Fields              []FieldConfig
	Rules               []PricingRule
	Enabled             bool
}

// FieldValue is one submitted form value. Number/select/choice/text fields
// use Value; multiselect fields use Values.
type FieldValue struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Number parses the value as a float; empty means zero.
func (v FieldValue) Number() (float64, error) {
	if v.Value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v.Value, 64)
}

// IsEmpty reports whether the value carries nothing.
func (v FieldValue) IsEmpty() bool {
	return v.Value == "" && len(v.Values) == 0
}

// FieldValues maps field name to submitted value.
type FieldValues map[string]FieldValue

// PriceBreakdown is the deterministic pricing result. ItemPrice is the flat
// add-on portion (everything accumulated on top of BasePrice except hourly
// charges); HourlyPrice is the hour-derived portion, already rescaled when
// two cleaners are assigned.
type PriceBreakdown struct {
	BasePrice         float64 `json:"basePrice"`
	ItemPrice         float64 `json:"itemPrice"`
	HourlyPrice       float64 `json:"hourlyPrice"`
	TotalPrice        float64 `json:"totalPrice"`
	EstimatedHours    int     `json:"estimatedHours"`
	AssignTwoCleaners bool    `json:"assignTwoCleaners"`
}

// Validate checks the configuration once at load time, so that requests are
// never priced against a malformed rule set.
func (c *ServiceConfig) Validate() error {
	if c.ServiceType == "" {
		return fmt.Errorf("service type is required")
	}
	if c.BasePrice < 0 || c.HourlyRate < 0 || c.MinHours < 0 {
		return fmt.Errorf("base price, hourly rate and min hours must be non-negative")
	}
	fieldNames := make(map[string]struct{}, len(c.Fields))
	for i := range c.Fields {
		field := &c.Fields[i]
		if field.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if _, dup := fieldNames[field.Name]; dup {
			return fmt.Errorf("field %q: duplicate name", field.Name)
		}
		fieldNames[field.Name] = struct{}{}
		switch field.Type {
		case FieldTypeNumber, FieldTypeText:
		case FieldTypeSelect, FieldTypeMultiSelect, FieldTypeChoice:
			if field.PricingEnabled && len(field.Options) == 0 {
				return fmt.Errorf("field %q: priced %s field needs options", field.Name, field.Type)
			}
		default:
			return fmt.Errorf("field %q: unknown type %q", field.Name, field.Type)
		}
	}
	for i, rule := range c.Rules {
		if _, known := fieldNames[rule.Field]; !known {
			return fmt.Errorf("rule %d: unknown field %q", i, rule.Field)
		}
		switch rule.Operator {
		case OperatorEquals, OperatorGreaterThan, OperatorLessThan, OperatorContains, OperatorNotEmpty:
		default:
			return fmt.Errorf("rule %d: unknown operator %q", i, rule.Operator)
		}
		switch rule.Action {
		case ActionAddPrice, ActionMultiplyPrice, ActionAddTime, ActionMultiplyTime:
		default:
			return fmt.Errorf("rule %d: unknown action %q", i, rule.Action)
		}
	}
	if c.TwoCleanerThreshold != nil && *c.TwoCleanerThreshold < 1 {
		return fmt.Errorf("two cleaner threshold must be positive")
	}
	return nil
}
