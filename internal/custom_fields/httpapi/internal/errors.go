package internal

import (
	"errors"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

// FieldErrors flattens validation failures into the per-field map of an error response.
func FieldErrors(err error) (map[string]string, bool) {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for fieldID, fieldErr := range validationErrs.ByField() {
			fields[fieldID.String()] = fieldErr.Reason
		}
		return fields, true
	}

	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		return map[string]string{validationErr.FieldID.String(): validationErr.Reason}, true
	}

	return nil, false
}

// ToValidationErrors is the inverse of FieldErrors, ordered by field id.
func ToValidationErrors(fields map[string]string) domain.ValidationErrors {
	result := make(domain.ValidationErrors, 0, len(fields))
	for _, fieldID := range sortedKeys(fields) {
		reason := fields[fieldID]
		result = append(result, domain.ValidationError{
			FieldID: shareddomain.ID(fieldID),
			Reason:  reason,
			Err:     errors.New(reason),
		})
	}
	return result
}
