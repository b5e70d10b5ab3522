package domain

import (
	"time"

	"prospectar-server/internal/infra/utils"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

type ChangeType string

const (
	ChangeTypeCreate ChangeType = "create"
	ChangeTypeUpdate ChangeType = "update"
	ChangeTypeDelete ChangeType = "delete"
)

// AuditEntry records one value change of one field on one entity.
type AuditEntry struct {
	ID         shareddomain.ID
	EntityID   shareddomain.ID
	FieldID    shareddomain.ID
	OldValue   Value
	NewValue   Value
	ChangeType ChangeType
	ChangedBy  shareddomain.Actor
	CreatedAt  time.Time
}

// ValueChange is published after a successful write, before it is audited.
type ValueChange struct {
	EntityID  shareddomain.ID
	FieldID   shareddomain.ID
	OldValue  Value
	NewValue  Value
	ChangedBy shareddomain.Actor
	ChangedAt time.Time
}

// IsNoop reports whether the write left the stored value unchanged.
func (c ValueChange) IsNoop() bool {
	return c.OldValue.Equal(c.NewValue)
}

func (c ValueChange) ChangeType() ChangeType {
	switch {
	case c.OldValue.IsEmpty():
		return ChangeTypeCreate
	case c.NewValue.IsEmpty():
		return ChangeTypeDelete
	default:
		return ChangeTypeUpdate
	}
}

func (c ValueChange) ToAuditEntry() AuditEntry {
	return AuditEntry{
		ID:         shareddomain.ID(utils.GenerateUUID()),
		EntityID:   c.EntityID,
		FieldID:    c.FieldID,
		OldValue:   c.OldValue,
		NewValue:   c.NewValue,
		ChangeType: c.ChangeType(),
		ChangedBy:  c.ChangedBy,
		CreatedAt:  c.ChangedAt,
	}
}
