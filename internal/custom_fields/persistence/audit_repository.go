package persistence

import (
	"context"
	"fmt"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/persistence/internal"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/sql"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

func NewAuditRepository(orm sql.ORM) (*SimpleAuditRepository, error) {
	err := orm.AutoMigrate(&internal.AuditEntry{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleAuditRepository{orm: orm}, nil
}

var _ usecases.AuditRepository = (*SimpleAuditRepository)(nil)

type SimpleAuditRepository struct {
	orm sql.ORM
}

func (r *SimpleAuditRepository) Create(ctx context.Context, entry domain.AuditEntry) error {
	data, err := internal.FromAuditEntry(entry)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}

	err = r.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleAuditRepository) FindByEntity(ctx context.Context, entityID, fieldID shareddomain.ID, pagination usecases.Pagination) ([]domain.AuditEntry, int, error) {
	query := "entity_id = ?"
	args := []any{entityID.String()}
	if !fieldID.IsZero() {
		query += " AND field_id = ?"
		args = append(args, fieldID.String())
	}

	var total int64
	err := r.orm.
		WithContext(ctx).
		Model(&internal.AuditEntry{}).
		Where(query, args...).
		Count(&total).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	limit := pagination.Limit
	if limit <= 0 {
		limit = -1
	}

	var entities []internal.AuditEntry
	err = r.orm.
		WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.AuditEntry, 0, len(entities))
	for _, entity := range entities {
		entry, err := entity.ToDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("decoding audit entry %s: %w", entity.ID, err)
		}
		result = append(result, entry)
	}

	return result, int(total), nil
}

func (r *SimpleAuditRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.orm.
		WithContext(ctx).
		Where("created_at < ?", before.UTC()).
		Delete(&internal.AuditEntry{})
	if err := result.Error(); err != nil {
		return 0, fmt.Errorf("database delete: %w", err)
	}

	return result.RowsAffected(), nil
}
