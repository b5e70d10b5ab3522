package internal

import (
	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/infra/utils"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

// Request models
type CustomFieldValuesSetRequest struct {
	Values []FieldValue `json:"values"`
}

type FieldValue struct {
	FieldID string       `json:"field_id"`
	Value   domain.Value `json:"value"`
}

// Response models
type CustomFieldValuesResponse struct {
	EntityID string                  `json:"entity_id"`
	Values   map[string]domain.Value `json:"values"`
}

type AuditEntryResponse struct {
	ID         string       `json:"id"`
	FieldID    string       `json:"field_id"`
	OldValue   domain.Value `json:"old_value"`
	NewValue   domain.Value `json:"new_value"`
	ChangeType string       `json:"change_type"`
	ChangedBy  string       `json:"changed_by"`
	CreatedAt  utils.Time   `json:"created_at"`
}

// Conversion functions
func (r CustomFieldValuesSetRequest) ToPairs() []domain.FieldValuePair {
	pairs := make([]domain.FieldValuePair, len(r.Values))
	for i, value := range r.Values {
		pairs[i] = domain.FieldValuePair{FieldID: shareddomain.ID(value.FieldID), Value: value.Value}
	}
	return pairs
}

func FromPairs(pairs []domain.FieldValuePair) CustomFieldValuesSetRequest {
	values := make([]FieldValue, len(pairs))
	for i, pair := range pairs {
		values[i] = FieldValue{FieldID: pair.FieldID.String(), Value: pair.Value}
	}
	return CustomFieldValuesSetRequest{Values: values}
}

func ToCustomFieldValuesResponse(entityID shareddomain.ID, values map[shareddomain.ID]domain.Value) CustomFieldValuesResponse {
	result := make(map[string]domain.Value, len(values))
	for fieldID, value := range values {
		result[fieldID.String()] = value
	}
	return CustomFieldValuesResponse{EntityID: entityID.String(), Values: result}
}

// ToDomain drops null entries; an absent field and a null value read the same.
func (r CustomFieldValuesResponse) ToDomain() map[shareddomain.ID]domain.Value {
	result := make(map[shareddomain.ID]domain.Value, len(r.Values))
	for fieldID, value := range r.Values {
		if value.IsNull() {
			continue
		}
		result[shareddomain.ID(fieldID)] = value
	}
	return result
}

func ToAuditEntryResponse(entry domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         entry.ID.String(),
		FieldID:    entry.FieldID.String(),
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		ChangeType: string(entry.ChangeType),
		ChangedBy:  string(entry.ChangedBy),
		CreatedAt:  utils.Time{Time: entry.CreatedAt},
	}
}
