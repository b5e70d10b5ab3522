package validation

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"prospectar-server/internal/custom_fields/domain"
)

var patternCache sync.Map

// applyRules runs the field rules on non-empty single values. Sets and empty
// values are left to the type checks.
func applyRules(field domain.FieldDefinition, value domain.Value) error {
	text, ok := value.Single()
	if !ok || text == "" {
		return nil
	}

	for _, rule := range field.Rules {
		if err := applyRule(rule, text); err != nil {
			return err
		}
	}
	return nil
}

func applyRule(rule domain.ValidationRule, text string) error {
	var failed bool
	switch rule.Type {
	case domain.RuleMinLength:
		failed = utf8.RuneCountInString(text) < rule.Length()
	case domain.RuleMaxLength:
		failed = utf8.RuneCountInString(text) > rule.Length()
	case domain.RulePattern:
		pattern, err := compile(rule.Value)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidRule, err)
		}
		failed = !pattern.MatchString(text)
	default:
		return fmt.Errorf("%w: unknown rule type %q", domain.ErrInvalidRule, rule.Type)
	}

	if !failed {
		return nil
	}
	if rule.Message != "" {
		return fmt.Errorf("%w: %s", domain.ErrRuleViolation, rule.Message)
	}
	return fmt.Errorf("%w: %s %s", domain.ErrRuleViolation, rule.Type, rule.Value)
}

func compile(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.Store(expr, pattern)
	return pattern, nil
}
