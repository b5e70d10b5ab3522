package persistence

import (
	"context"
	"errors"
	"fmt"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/persistence/internal"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/pubsub"
	"prospectar-server/internal/infra/sql"
	"prospectar-server/internal/shared_kernel/avro"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

func NewFieldDefinitionRepository(publisherFactory pubsub.PublisherFactory, orm sql.ORM) (*SimpleFieldDefinitionRepository, error) {
	publisher, err := publisherFactory.New(usecases.DefinitionsTopic, &avro.AvroCustomField{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.CustomField{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleFieldDefinitionRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.FieldDefinitionRepository = (*SimpleFieldDefinitionRepository)(nil)

// SimpleFieldDefinitionRepository stores definitions and announces every
// change on the definitions topic so other replicas drop their caches.
type SimpleFieldDefinitionRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleFieldDefinitionRepository) Create(ctx context.Context, field domain.FieldDefinition) error {
	data := internal.FromFieldDefinition(field)
	err := r.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return r.publish(ctx, field)
}

func (r *SimpleFieldDefinitionRepository) Update(ctx context.Context, field domain.FieldDefinition) error {
	data := internal.FromFieldDefinition(field)

	err := r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		var current internal.CustomField
		err := tx.First(&current, "id = ?", data.ID).Error()
		if errors.Is(err, sql.ErrRecordNotFound) {
			return usecases.ErrFieldNotFound
		}
		if err != nil {
			return fmt.Errorf("database query: %w", err)
		}

		data.CreatedAt = current.CreatedAt
		return tx.Save(&data).Error()
	})
	if errors.Is(err, usecases.ErrFieldNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("database update: %w", err)
	}

	return r.publish(ctx, field)
}

func (r *SimpleFieldDefinitionRepository) GetByID(ctx context.Context, id shareddomain.ID) (domain.FieldDefinition, error) {
	var entity internal.CustomField
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.FieldDefinition{}, usecases.ErrFieldNotFound
	}

	if err != nil {
		return domain.FieldDefinition{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleFieldDefinitionRepository) FindAllByTenant(ctx context.Context, tenantID shareddomain.ID) ([]domain.FieldDefinition, error) {
	var entities []internal.CustomField
	err := r.orm.
		WithContext(ctx).
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID.String()).
		Order("created_at ASC, id ASC").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.FieldDefinition, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}

func (r *SimpleFieldDefinitionRepository) publish(ctx context.Context, field domain.FieldDefinition) error {
	err := r.publisher.Publish(ctx, pubsub.Key(field.ID), avro.ToAvroCustomField(field))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}
	return nil
}
