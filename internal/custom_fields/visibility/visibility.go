// Package visibility decides which custom fields a UI tab shows.
// Everything here is pure and cheap enough to recompute on every render.
package visibility

import (
	"prospectar-server/internal/custom_fields/domain"
)

// IsVisible returns the explicit tab setting, or true when the tab has none.
// Unknown tabs are never rejected.
func IsVisible(field domain.FieldDefinition, tab domain.Tab) bool {
	visible, found := field.Visibility.Tabs[tab]
	if !found {
		return true
	}
	return visible
}

// VisibleFields keeps the fields shown in tab, preserving their order.
func VisibleFields(fields []domain.FieldDefinition, tab domain.Tab) []domain.FieldDefinition {
	result := make([]domain.FieldDefinition, 0, len(fields))
	for _, field := range fields {
		if IsVisible(field, tab) {
			result = append(result, field)
		}
	}
	return result
}

func InSummary(field domain.FieldDefinition) bool {
	return field.Visibility.ShownInSummary
}

func SummaryFields(fields []domain.FieldDefinition) []domain.FieldDefinition {
	result := make([]domain.FieldDefinition, 0, len(fields))
	for _, field := range fields {
		if InSummary(field) {
			result = append(result, field)
		}
	}
	return result
}
