package usecases

import (
	"context"
	"errors"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/custom_fields/usecases/repository_port_mock.go -package=usecases -mock_names=FieldDefinitionRepository=MockFieldDefinitionRepository,FieldValueRepository=MockFieldValueRepository,AuditRepository=MockAuditRepository

var (
	ErrFieldNotFound = errors.New("custom field not found")
	ErrFieldDeleted  = errors.New("custom field is deleted")
)

// Pagination encapsulates pagination parameters for repository queries
type Pagination struct {
	Limit  int
	Offset int
}

type FieldDefinitionRepository interface {
	Create(context.Context, domain.FieldDefinition) error
	Update(context.Context, domain.FieldDefinition) error
	GetByID(context.Context, shareddomain.ID) (domain.FieldDefinition, error)
	// FindAllByTenant excludes deleted definitions and keeps creation order.
	FindAllByTenant(context.Context, shareddomain.ID) ([]domain.FieldDefinition, error)
}

type FieldValueRepository interface {
	// FindByEntity returns the stored values of non-deleted fields, coerced to their current type.
	FindByEntity(context.Context, shareddomain.ID) (map[shareddomain.ID]domain.Value, error)
	Upsert(context.Context, shareddomain.ID, []domain.FieldValuePair) error
}

type AuditRepository interface {
	Create(context.Context, domain.AuditEntry) error
	FindByEntity(ctx context.Context, entityID shareddomain.ID, fieldID shareddomain.ID, pagination Pagination) ([]domain.AuditEntry, int, error)
	DeleteOlderThan(context.Context, time.Time) (int64, error)
}
