package avro

import (
	"encoding/json"
	"sort"
	"time"

	"prospectar-server/internal/custom_fields/domain"
)

// AvroCustomField is the wire form of a field definition
type AvroCustomField struct {
	ID             string     `avro:"id"`
	Version        int        `avro:"version"`
	TenantID       string     `avro:"tenant_id"`
	Name           string     `avro:"name"`
	Type           string     `avro:"type"`
	Options        []string   `avro:"options"`
	Required       bool       `avro:"required"`
	ShownInSummary bool       `avro:"shown_in_summary"`
	HiddenTabs     []string   `avro:"hidden_tabs"`
	Rules          string     `avro:"rules"`
	CreatedAt      time.Time  `avro:"created_at"`
	UpdatedAt      time.Time  `avro:"updated_at"`
	DeletedAt      *time.Time `avro:"deleted_at"`
}

// AvroCustomFieldValue is the wire form of a value change
type AvroCustomFieldValue struct {
	EntityID   string    `avro:"entity_id"`
	FieldID    string    `avro:"field_id"`
	ChangeType string    `avro:"change_type"`
	OldKind    string    `avro:"old_kind"`
	OldItems   []string  `avro:"old_items"`
	NewKind    string    `avro:"new_kind"`
	NewItems   []string  `avro:"new_items"`
	ChangedBy  string    `avro:"changed_by"`
	ChangedAt  time.Time `avro:"changed_at"`
}

func ToAvroCustomField(field domain.FieldDefinition) *AvroCustomField {
	rules, _ := json.Marshal(field.Rules)

	hidden := make([]string, 0)
	for tab, visible := range field.Visibility.Tabs {
		if !visible {
			hidden = append(hidden, string(tab))
		}
	}
	sort.Strings(hidden)

	options := field.Options
	if options == nil {
		options = []string{}
	}

	return &AvroCustomField{
		ID:             field.ID.String(),
		Version:        int(field.Version),
		TenantID:       field.TenantID.String(),
		Name:           field.Name.String(),
		Type:           field.Type.String(),
		Options:        options,
		Required:       field.Required,
		ShownInSummary: field.Visibility.ShownInSummary,
		HiddenTabs:     hidden,
		Rules:          string(rules),
		CreatedAt:      field.CreatedAt.UTC().Truncate(time.Millisecond),
		UpdatedAt:      field.UpdatedAt.UTC().Truncate(time.Millisecond),
		DeletedAt:      truncatePtr(field.DeletedAt),
	}
}

func ToAvroCustomFieldValue(change domain.ValueChange) *AvroCustomFieldValue {
	oldKind, oldItems := valueItems(change.OldValue)
	newKind, newItems := valueItems(change.NewValue)

	return &AvroCustomFieldValue{
		EntityID:   change.EntityID.String(),
		FieldID:    change.FieldID.String(),
		ChangeType: string(change.ChangeType()),
		OldKind:    oldKind,
		OldItems:   oldItems,
		NewKind:    newKind,
		NewItems:   newItems,
		ChangedBy:  string(change.ChangedBy),
		ChangedAt:  change.ChangedAt.UTC().Truncate(time.Millisecond),
	}
}

func valueItems(value domain.Value) (string, []string) {
	switch value.Kind() {
	case domain.ValueKindSingle:
		single, _ := value.Single()
		return value.Kind().String(), []string{single}
	case domain.ValueKindSet:
		set, _ := value.Set()
		return value.Kind().String(), set
	default:
		return value.Kind().String(), []string{}
	}
}

// ToValue rebuilds a domain value from its kind and items
func ToValue(kind string, items []string) domain.Value {
	switch kind {
	case domain.ValueKindSingle.String():
		if len(items) == 0 {
			return domain.SingleValue("")
		}
		return domain.SingleValue(items[0])
	case domain.ValueKindSet.String():
		return domain.SetValue(items...)
	default:
		return domain.NullValue()
	}
}

func truncatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	truncated := t.UTC().Truncate(time.Millisecond)
	return &truncated
}
