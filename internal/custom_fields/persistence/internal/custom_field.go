package internal

import (
	"database/sql/driver"
	"encoding/json"
	"slices"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

type CustomField struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	Version    int        `json:"version"`
	TenantID   string     `json:"tenant_id" gorm:"index;not null"`
	Name       string     `json:"name" gorm:"not null"`
	Type       string     `json:"type" gorm:"not null"`
	Options    Options    `json:"options" gorm:"type:jsonb"`
	Required   bool       `json:"required"`
	Visibility Visibility `json:"visibility" gorm:"type:jsonb"`
	Rules      Rules      `json:"rules" gorm:"type:jsonb"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (CustomField) TableName() string {
	return "custom_fields"
}

func (f CustomField) ToDomain() domain.FieldDefinition {
	return domain.FieldDefinition{
		ID:         shareddomain.ID(f.ID),
		Version:    shareddomain.Version(f.Version),
		TenantID:   shareddomain.ID(f.TenantID),
		Name:       shareddomain.Name(f.Name),
		Type:       domain.FieldType(f.Type),
		Options:    slices.Clone(f.Options),
		Required:   f.Required,
		Visibility: domain.Visibility(f.Visibility).Clone(),
		Rules:      slices.Clone(f.Rules),
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
		DeletedAt:  f.DeletedAt,
	}
}

func FromFieldDefinition(value domain.FieldDefinition) CustomField {
	return CustomField{
		ID:         value.ID.String(),
		Version:    int(value.Version),
		TenantID:   value.TenantID.String(),
		Name:       value.Name.String(),
		Type:       value.Type.String(),
		Options:    Options(slices.Clone(value.Options)),
		Required:   value.Required,
		Visibility: Visibility(value.Visibility.Clone()),
		Rules:      Rules(slices.Clone(value.Rules)),
		CreatedAt:  value.CreatedAt,
		UpdatedAt:  value.UpdatedAt,
		DeletedAt:  value.DeletedAt,
	}
}

type Options []string

func (o Options) Value() (driver.Value, error) {
	if o == nil {
		o = Options{}
	}
	data, err := json.Marshal([]string(o))
	return string(data), err
}

func (o *Options) Scan(value any) error {
	*o = Options{}
	return scanJSON(value, (*[]string)(o))
}

type Visibility domain.Visibility

func (v Visibility) Value() (driver.Value, error) {
	data, err := json.Marshal(domain.Visibility(v))
	return string(data), err
}

func (v *Visibility) Scan(value any) error {
	visibility := domain.DefaultVisibility()
	if err := scanJSON(value, &visibility); err != nil {
		return err
	}
	if visibility.Tabs == nil {
		visibility.Tabs = map[domain.Tab]bool{}
	}
	*v = Visibility(visibility)
	return nil
}

type Rules []domain.ValidationRule

func (r Rules) Value() (driver.Value, error) {
	if r == nil {
		r = Rules{}
	}
	data, err := json.Marshal([]domain.ValidationRule(r))
	return string(data), err
}

func (r *Rules) Scan(value any) error {
	*r = Rules{}
	return scanJSON(value, (*[]domain.ValidationRule)(r))
}
