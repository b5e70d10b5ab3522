package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

type RuleType string

const (
	RuleMinLength RuleType = "min_length"
	RuleMaxLength RuleType = "max_length"
	RulePattern   RuleType = "pattern"
)

// ValidationRule constrains non-empty text and single_select values.
type ValidationRule struct {
	Type    RuleType `json:"type" msgpack:"type"`
	Value   string   `json:"value" msgpack:"value"`
	Message string   `json:"message,omitempty" msgpack:"message,omitempty"`
}

func (r ValidationRule) Validate() error {
	switch r.Type {
	case RuleMinLength, RuleMaxLength:
		length, err := strconv.Atoi(r.Value)
		if err != nil || length < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer, got %q", ErrInvalidRule, r.Type, r.Value)
		}
	case RulePattern:
		if _, err := regexp.Compile(r.Value); err != nil {
			return fmt.Errorf("%w: pattern %q: %v", ErrInvalidRule, r.Value, err)
		}
	default:
		return fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, r.Type)
	}
	return nil
}

// Length returns the numeric bound of a length rule.
func (r ValidationRule) Length() int {
	length, _ := strconv.Atoi(r.Value)
	return length
}
