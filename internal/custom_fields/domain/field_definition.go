package domain

import (
	"slices"
	"time"

	"prospectar-server/internal/infra/utils"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

// FieldDefinition is a tenant-defined custom attribute for contacts.
type FieldDefinition struct {
	ID         shareddomain.ID      `msgpack:"id"`
	Version    shareddomain.Version `msgpack:"version"`
	TenantID   shareddomain.ID      `msgpack:"tenant_id"`
	Name       shareddomain.Name    `msgpack:"name"`
	Type       FieldType            `msgpack:"type"`
	Options    []string             `msgpack:"options"`
	Required   bool                 `msgpack:"required"`
	Visibility Visibility           `msgpack:"visibility"`
	Rules      []ValidationRule     `msgpack:"rules"`
	CreatedAt  time.Time            `msgpack:"created_at"`
	UpdatedAt  time.Time            `msgpack:"updated_at"`
	DeletedAt  *time.Time           `msgpack:"deleted_at"`
}

func (f *FieldDefinition) IsDeleted() bool {
	return f.DeletedAt != nil
}

func (f *FieldDefinition) SoftDelete() {
	now := time.Now().UTC()
	f.DeletedAt = &now
	f.UpdatedAt = now
	f.Version++
}

func (f FieldDefinition) HasOption(option string) bool {
	return slices.Contains(f.Options, option)
}

// Validate checks the structural invariants shared by create and update.
func (f FieldDefinition) Validate() error {
	var errs ValidationErrors

	if f.Name == "" {
		errs = append(errs, NewValidationError("name", ErrNameRequired))
	}

	if _, err := ParseFieldType(string(f.Type)); err != nil {
		errs = append(errs, NewValidationError("type", err))
	}

	switch {
	case f.Type.IsSelect() && len(f.Options) == 0:
		errs = append(errs, NewValidationError("options", ErrOptionsRequired))
	case f.Type == FieldTypeText && len(f.Options) > 0:
		errs = append(errs, NewValidationError("options", ErrOptionsForbidden))
	}

	seen := make(map[string]struct{}, len(f.Options))
	for _, option := range f.Options {
		if option == "" {
			errs = append(errs, NewValidationError("options", ErrEmptyOption))
			continue
		}
		if _, dup := seen[option]; dup {
			errs = append(errs, NewValidationError("options", ErrDuplicateOption))
			continue
		}
		seen[option] = struct{}{}
	}

	for _, rule := range f.Rules {
		if err := rule.Validate(); err != nil {
			errs = append(errs, NewValidationError("rules", err))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FieldDefinitionSpec is the administrator input for a new definition.
type FieldDefinitionSpec struct {
	TenantID   shareddomain.ID
	Name       string
	Type       FieldType
	Options    []string
	Required   bool
	Visibility *Visibility
	Rules      []ValidationRule
}

// FieldDefinitionPatch carries the attributes to change; nil means unchanged.
type FieldDefinitionPatch struct {
	Name       *string
	Type       *FieldType
	Options    *[]string
	Required   *bool
	Visibility *Visibility
	Rules      *[]ValidationRule
}

func (p FieldDefinitionPatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Options == nil &&
		p.Required == nil && p.Visibility == nil && p.Rules == nil
}

// Apply returns the patched copy. Moving away from a select type clears the options.
func (p FieldDefinitionPatch) Apply(field FieldDefinition) (FieldDefinition, error) {
	result := field
	result.Options = slices.Clone(field.Options)
	result.Rules = slices.Clone(field.Rules)
	result.Visibility = field.Visibility.Clone()

	if p.Name != nil {
		result.Name = shareddomain.Name(*p.Name)
	}
	if p.Type != nil {
		result.Type = *p.Type
		if !result.Type.IsSelect() {
			result.Options = nil
		}
	}
	if p.Options != nil && result.Type.IsSelect() {
		result.Options = slices.Clone(*p.Options)
	}
	if p.Required != nil {
		result.Required = *p.Required
	}
	if p.Visibility != nil {
		result.Visibility = p.Visibility.Clone()
	}
	if p.Rules != nil {
		result.Rules = slices.Clone(*p.Rules)
	}

	if err := result.Validate(); err != nil {
		return FieldDefinition{}, err
	}

	result.Version++
	result.UpdatedAt = time.Now().UTC()
	return result, nil
}

func NewFieldDefinitionBuilder() *fieldDefinitionBuilder {
	return &fieldDefinitionBuilder{}
}

type fieldDefinitionBuilder struct {
	actions []fieldDefinitionHandler
}

type fieldDefinitionHandler func(v *FieldDefinition) error

func (b *fieldDefinitionBuilder) WithTenantID(value shareddomain.ID) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.TenantID = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithName(value string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Name = shareddomain.Name(value)
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithType(value FieldType) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Type = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithOptions(value ...string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Options = slices.Clone(value)
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithRequired(value bool) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Required = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithVisibility(value Visibility) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Visibility = value.Clone()
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithTabVisibility(tab Tab, visible bool) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Visibility.Tabs[tab] = visible
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithShownInSummary(value bool) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Visibility.ShownInSummary = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithRules(value ...ValidationRule) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(d *FieldDefinition) error {
		d.Rules = slices.Clone(value)
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) FromSpec(spec FieldDefinitionSpec) *fieldDefinitionBuilder {
	b.WithTenantID(spec.TenantID).
		WithName(spec.Name).
		WithType(spec.Type).
		WithOptions(spec.Options...).
		WithRequired(spec.Required).
		WithRules(spec.Rules...)
	if spec.Visibility != nil {
		b.WithVisibility(*spec.Visibility)
	}
	return b
}

func (b *fieldDefinitionBuilder) Build() (FieldDefinition, error) {
	now := time.Now().UTC()
	result := FieldDefinition{
		ID:         shareddomain.ID(utils.GenerateUUID()),
		Version:    1,
		Visibility: DefaultVisibility(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return FieldDefinition{}, err
		}
	}

	if !result.Type.IsSelect() && len(result.Options) == 0 {
		result.Options = nil
	}

	if err := result.Validate(); err != nil {
		return FieldDefinition{}, err
	}

	return result, nil
}
