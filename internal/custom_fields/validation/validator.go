// Package validation checks and normalizes custom field values per field type.
package validation

import (
	"fmt"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

// Validate checks shape, required-ness and rules of value for field.
// It returns nil or a domain.ValidationError scoped to field.ID.
func Validate(field domain.FieldDefinition, value domain.Value) error {
	var err error
	switch field.Type {
	case domain.FieldTypeText:
		err = validateText(field, value)
	case domain.FieldTypeSingleSelect:
		err = validateSingleSelect(field, value)
	case domain.FieldTypeMultiSelect:
		err = validateMultiSelect(field, value)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrUnknownFieldType, field.Type)
	}
	if err != nil {
		return domain.NewValidationError(field.ID, err)
	}

	if err := applyRules(field, value); err != nil {
		return domain.ValidationError{FieldID: field.ID, Reason: err.Error(), Err: err}
	}
	return nil
}

// ValidateAll validates every pair against its definition and aggregates the
// failures. Pairs referring to unknown fields fail with ErrUnknownField.
func ValidateAll(fields []domain.FieldDefinition, pairs []domain.FieldValuePair) error {
	index := IndexByID(fields)

	var errs domain.ValidationErrors
	for _, pair := range pairs {
		field, found := index[pair.FieldID]
		if !found {
			errs = append(errs, domain.NewValidationError(pair.FieldID, domain.ErrUnknownField))
			continue
		}
		if err := Validate(field, pair.Value); err != nil {
			errs = append(errs, err.(domain.ValidationError))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func IndexByID(fields []domain.FieldDefinition) map[shareddomain.ID]domain.FieldDefinition {
	index := make(map[shareddomain.ID]domain.FieldDefinition, len(fields))
	for _, field := range fields {
		index[field.ID] = field
	}
	return index
}

func validateText(field domain.FieldDefinition, value domain.Value) error {
	switch value.Kind() {
	case domain.ValueKindNull:
		if field.Required {
			return domain.ErrRequired
		}
	case domain.ValueKindSingle:
		if field.Required && value.IsEmpty() {
			return domain.ErrRequired
		}
	default:
		return fmt.Errorf("%w: text expects a string", domain.ErrShapeMismatch)
	}
	return nil
}

func validateSingleSelect(field domain.FieldDefinition, value domain.Value) error {
	switch value.Kind() {
	case domain.ValueKindNull:
		if field.Required {
			return domain.ErrRequired
		}
	case domain.ValueKindSingle:
		selected, _ := value.Single()
		if !field.HasOption(selected) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownOption, selected)
		}
	default:
		return fmt.Errorf("%w: single_select expects one option", domain.ErrShapeMismatch)
	}
	return nil
}

func validateMultiSelect(field domain.FieldDefinition, value domain.Value) error {
	switch value.Kind() {
	case domain.ValueKindNull:
		if field.Required {
			return domain.ErrRequired
		}
	case domain.ValueKindSet:
		selected, _ := value.Set()
		if field.Required && len(selected) == 0 {
			return domain.ErrRequired
		}
		for _, item := range selected {
			if !field.HasOption(item) {
				return fmt.Errorf("%w: %q", domain.ErrUnknownOption, item)
			}
		}
	default:
		return fmt.Errorf("%w: multi_select expects a set of options", domain.ErrShapeMismatch)
	}
	return nil
}
