// Package renderer describes how a custom field is presented and turns user
// input into values whose shape already matches the field type. Required-ness
// is checked again by whoever commits the value.
package renderer

import (
	"errors"
	"fmt"
	"slices"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

type WidgetKind string

const (
	WidgetTextInput     WidgetKind = "text_input"
	WidgetSelect        WidgetKind = "select"
	WidgetCheckboxGroup WidgetKind = "checkbox_group"
)

// NoneChoice is the select entry that clears a single_select value.
// Options can never be empty strings, so it cannot collide with one.
const NoneChoice = ""

const noneLabel = "None"

var ErrNotSelectable = errors.New("field does not accept choices")

type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
	// Stale marks a selected value the definition no longer offers.
	Stale bool `json:"stale,omitempty"`
}

type Widget struct {
	Kind     WidgetKind       `json:"kind"`
	FieldID  shareddomain.ID  `json:"field_id"`
	Type     domain.FieldType `json:"type"`
	Label    string           `json:"label"`
	Required bool             `json:"required"`
	Text     string           `json:"text,omitempty"`
	Choices  []Choice         `json:"choices,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Describe picks the affordance for field and fills it with value. fieldErr,
// when not nil, is shown inline.
func Describe(field domain.FieldDefinition, value domain.Value, fieldErr error) Widget {
	widget := Widget{
		FieldID:  field.ID,
		Label:    string(field.Name),
		Required: field.Required,
		Type:     field.Type,
	}
	if fieldErr != nil {
		widget.Error = reason(fieldErr)
	}

	switch field.Type {
	case domain.FieldTypeSingleSelect:
		widget.Kind = WidgetSelect
		widget.Choices = selectChoices(field, value)
	case domain.FieldTypeMultiSelect:
		widget.Kind = WidgetCheckboxGroup
		widget.Choices = checkboxChoices(field, value)
	default:
		widget.Kind = WidgetTextInput
		widget.Text, _ = value.Single()
	}
	return widget
}

// Text produces the value of a text input. An empty input clears the field.
func Text(field domain.FieldDefinition, input string) (domain.Value, error) {
	if field.Type != domain.FieldTypeText {
		return domain.Value{}, fmt.Errorf("%w: %s is %s", domain.ErrShapeMismatch, field.ID, field.Type)
	}
	if input == "" {
		return domain.NullValue(), nil
	}
	return domain.SingleValue(input), nil
}

// Choose produces a single_select value. NoneChoice yields null.
func Choose(field domain.FieldDefinition, option string) (domain.Value, error) {
	if field.Type != domain.FieldTypeSingleSelect {
		return domain.Value{}, fmt.Errorf("%w: %s is %s", ErrNotSelectable, field.ID, field.Type)
	}
	if option == NoneChoice {
		return domain.NullValue(), nil
	}
	if !field.HasOption(option) {
		return domain.Value{}, fmt.Errorf("%w: %q", domain.ErrUnknownOption, option)
	}
	return domain.SingleValue(option), nil
}

// Toggle checks or unchecks option in a multi_select value. The result holds
// only current options, in option order; stale members are dropped.
func Toggle(field domain.FieldDefinition, current domain.Value, option string, checked bool) (domain.Value, error) {
	if field.Type != domain.FieldTypeMultiSelect {
		return domain.Value{}, fmt.Errorf("%w: %s is %s", ErrNotSelectable, field.ID, field.Type)
	}
	if !field.HasOption(option) {
		return domain.Value{}, fmt.Errorf("%w: %q", domain.ErrUnknownOption, option)
	}

	next := make([]string, 0, len(field.Options))
	for _, candidate := range field.Options {
		selected := current.Contains(candidate)
		if candidate == option {
			selected = checked
		}
		if selected {
			next = append(next, candidate)
		}
	}
	return domain.SetValue(next...), nil
}

func selectChoices(field domain.FieldDefinition, value domain.Value) []Choice {
	selected, _ := value.Single()
	choices := make([]Choice, 0, len(field.Options)+2)
	choices = append(choices, Choice{Value: NoneChoice, Label: noneLabel, Selected: value.IsEmpty()})
	for _, option := range field.Options {
		choices = append(choices, Choice{Value: option, Label: option, Selected: option == selected})
	}
	if selected != "" && !field.HasOption(selected) {
		choices = append(choices, Choice{Value: selected, Label: selected, Selected: true, Stale: true})
	}
	return choices
}

func checkboxChoices(field domain.FieldDefinition, value domain.Value) []Choice {
	choices := make([]Choice, 0, len(field.Options))
	for _, option := range field.Options {
		choices = append(choices, Choice{Value: option, Label: option, Selected: value.Contains(option)})
	}
	members, _ := value.Set()
	for _, member := range members {
		if !slices.Contains(field.Options, member) {
			choices = append(choices, Choice{Value: member, Label: member, Selected: true, Stale: true})
		}
	}
	return choices
}

func reason(err error) string {
	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}
	return err.Error()
}
