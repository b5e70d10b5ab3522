package internal

import (
	"time"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

type AuditEntry struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	EntityID   string    `json:"entity_id" gorm:"index:idx_custom_field_audit_entity;not null"`
	FieldID    string    `json:"field_id" gorm:"not null"`
	OldValue   RawValue  `json:"old_value" gorm:"type:jsonb"`
	NewValue   RawValue  `json:"new_value" gorm:"type:jsonb"`
	ChangeType string    `json:"change_type" gorm:"not null"`
	ChangedBy  string    `json:"changed_by" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_custom_field_audit_entity"`
}

func (AuditEntry) TableName() string {
	return "custom_field_audit"
}

func (e AuditEntry) ToDomain() (domain.AuditEntry, error) {
	oldValue, err := e.OldValue.ToDomain()
	if err != nil {
		return domain.AuditEntry{}, err
	}
	newValue, err := e.NewValue.ToDomain()
	if err != nil {
		return domain.AuditEntry{}, err
	}

	return domain.AuditEntry{
		ID:         shareddomain.ID(e.ID),
		EntityID:   shareddomain.ID(e.EntityID),
		FieldID:    shareddomain.ID(e.FieldID),
		OldValue:   oldValue,
		NewValue:   newValue,
		ChangeType: domain.ChangeType(e.ChangeType),
		ChangedBy:  shareddomain.Actor(e.ChangedBy),
		CreatedAt:  e.CreatedAt,
	}, nil
}

func FromAuditEntry(value domain.AuditEntry) (AuditEntry, error) {
	oldValue, err := FromValue(value.OldValue)
	if err != nil {
		return AuditEntry{}, err
	}
	newValue, err := FromValue(value.NewValue)
	if err != nil {
		return AuditEntry{}, err
	}

	return AuditEntry{
		ID:         value.ID.String(),
		EntityID:   value.EntityID.String(),
		FieldID:    value.FieldID.String(),
		OldValue:   oldValue,
		NewValue:   newValue,
		ChangeType: string(value.ChangeType),
		ChangedBy:  string(value.ChangedBy),
		CreatedAt:  value.CreatedAt,
	}, nil
}
