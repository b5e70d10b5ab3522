package internal

import (
	"slices"
	"sort"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/infra/utils"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

// Request models
type CustomFieldCreateRequest struct {
	TenantID   string           `json:"tenant_id"`
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Options    []string         `json:"options,omitempty"`
	Required   bool             `json:"required"`
	Visibility *Visibility      `json:"visibility,omitempty"`
	Rules      []ValidationRule `json:"rules,omitempty"`
}

type CustomFieldUpdateRequest struct {
	Name       *string           `json:"name,omitempty"`
	Type       *string           `json:"type,omitempty"`
	Options    *[]string         `json:"options,omitempty"`
	Required   *bool             `json:"required,omitempty"`
	Visibility *Visibility       `json:"visibility,omitempty"`
	Rules      *[]ValidationRule `json:"rules,omitempty"`
}

type Visibility struct {
	ShownInSummary bool            `json:"shown_in_summary"`
	Tabs           map[string]bool `json:"tabs"`
}

type ValidationRule struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Message string `json:"message,omitempty"`
}

// Response models
type CustomFieldResponse struct {
	ID         string           `json:"id"`
	Version    int              `json:"version"`
	TenantID   string           `json:"tenant_id"`
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Options    []string         `json:"options"`
	Required   bool             `json:"required"`
	Visibility Visibility       `json:"visibility"`
	Rules      []ValidationRule `json:"rules"`
	CreatedAt  utils.Time       `json:"created_at"`
	UpdatedAt  utils.Time       `json:"updated_at"`
}

type CustomFieldListResponse struct {
	Fields []CustomFieldResponse `json:"fields"`
	Total  int                   `json:"total"`
}

// Conversion functions
func (r CustomFieldCreateRequest) ToSpec() domain.FieldDefinitionSpec {
	spec := domain.FieldDefinitionSpec{
		TenantID: shareddomain.ID(r.TenantID),
		Name:     r.Name,
		Type:     domain.FieldType(r.Type),
		Options:  slices.Clone(r.Options),
		Required: r.Required,
		Rules:    toDomainRules(r.Rules),
	}
	if r.Visibility != nil {
		visibility := r.Visibility.ToDomain()
		spec.Visibility = &visibility
	}
	return spec
}

func (r CustomFieldUpdateRequest) ToPatch() domain.FieldDefinitionPatch {
	patch := domain.FieldDefinitionPatch{
		Name:     r.Name,
		Options:  r.Options,
		Required: r.Required,
	}
	if r.Type != nil {
		fieldType := domain.FieldType(*r.Type)
		patch.Type = &fieldType
	}
	if r.Visibility != nil {
		visibility := r.Visibility.ToDomain()
		patch.Visibility = &visibility
	}
	if r.Rules != nil {
		rules := toDomainRules(*r.Rules)
		patch.Rules = &rules
	}
	return patch
}

func (v Visibility) ToDomain() domain.Visibility {
	result := domain.DefaultVisibility()
	result.ShownInSummary = v.ShownInSummary
	for tab, visible := range v.Tabs {
		result.Tabs[domain.Tab(tab)] = visible
	}
	return result
}

func FromVisibility(value domain.Visibility) Visibility {
	tabs := make(map[string]bool, len(value.Tabs))
	for tab, visible := range value.Tabs {
		tabs[string(tab)] = visible
	}
	return Visibility{ShownInSummary: value.ShownInSummary, Tabs: tabs}
}

func toDomainRules(rules []ValidationRule) []domain.ValidationRule {
	if rules == nil {
		return nil
	}
	result := make([]domain.ValidationRule, len(rules))
	for i, rule := range rules {
		result[i] = domain.ValidationRule{
			Type:    domain.RuleType(rule.Type),
			Value:   rule.Value,
			Message: rule.Message,
		}
	}
	return result
}

func FromRules(rules []domain.ValidationRule) []ValidationRule {
	result := make([]ValidationRule, len(rules))
	for i, rule := range rules {
		result[i] = ValidationRule{
			Type:    string(rule.Type),
			Value:   rule.Value,
			Message: rule.Message,
		}
	}
	return result
}

func ToCustomFieldResponse(field domain.FieldDefinition) CustomFieldResponse {
	options := slices.Clone(field.Options)
	if options == nil {
		options = []string{}
	}

	return CustomFieldResponse{
		ID:         field.ID.String(),
		Version:    int(field.Version),
		TenantID:   field.TenantID.String(),
		Name:       field.Name.String(),
		Type:       field.Type.String(),
		Options:    options,
		Required:   field.Required,
		Visibility: FromVisibility(field.Visibility),
		Rules:      FromRules(field.Rules),
		CreatedAt:  utils.Time{Time: field.CreatedAt},
		UpdatedAt:  utils.Time{Time: field.UpdatedAt},
	}
}

func ToCustomFieldListResponse(fields []domain.FieldDefinition) CustomFieldListResponse {
	responses := make([]CustomFieldResponse, len(fields))
	for i, field := range fields {
		responses[i] = ToCustomFieldResponse(field)
	}
	return CustomFieldListResponse{Fields: responses, Total: len(responses)}
}

// ToDefinition rebuilds the domain definition on the client side.
func (r CustomFieldResponse) ToDefinition() domain.FieldDefinition {
	return domain.FieldDefinition{
		ID:         shareddomain.ID(r.ID),
		Version:    shareddomain.Version(r.Version),
		TenantID:   shareddomain.ID(r.TenantID),
		Name:       shareddomain.Name(r.Name),
		Type:       domain.FieldType(r.Type),
		Options:    slices.Clone(r.Options),
		Required:   r.Required,
		Visibility: r.Visibility.ToDomain(),
		Rules:      toDomainRules(r.Rules),
		CreatedAt:  r.CreatedAt.Time,
		UpdatedAt:  r.UpdatedAt.Time,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
