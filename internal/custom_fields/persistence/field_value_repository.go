package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/persistence/internal"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/custom_fields/validation"
	"prospectar-server/internal/infra/pubsub"
	"prospectar-server/internal/infra/sql"
	"prospectar-server/internal/shared_kernel/avro"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/clause"
)

const _maxConcurrentPublishes = 8

func NewFieldValueRepository(publisherFactory pubsub.PublisherFactory, orm sql.ORM) (*SimpleFieldValueRepository, error) {
	publisher, err := publisherFactory.New(usecases.ValuesTopic, &avro.AvroCustomFieldValue{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.CustomField{}, &internal.CustomFieldValue{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleFieldValueRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.FieldValueRepository = (*SimpleFieldValueRepository)(nil)

type SimpleFieldValueRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

// FindByEntity skips values of deleted fields and null values. Each value is
// coerced to the current type of its field.
func (r *SimpleFieldValueRepository) FindByEntity(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error) {
	var rows []internal.StoredValue
	err := r.orm.
		WithContext(ctx).
		Table("custom_field_values").
		Select("custom_field_values.field_id, custom_field_values.value, custom_fields.type").
		Joins("JOIN custom_fields ON custom_fields.id = custom_field_values.field_id AND custom_fields.deleted_at IS NULL").
		Where("custom_field_values.entity_id = ?", entityID.String()).
		Scan(&rows).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make(map[shareddomain.ID]domain.Value, len(rows))
	for _, row := range rows {
		if len(row.Value) == 0 {
			continue
		}
		field := domain.FieldDefinition{ID: shareddomain.ID(row.FieldID), Type: domain.FieldType(row.Type)}
		value := validation.CoerceOnRead(field, []byte(row.Value))
		if value.IsNull() {
			continue
		}
		result[field.ID] = value
	}

	return result, nil
}

// Upsert stores the batch in one transaction. When a field appears twice
// the last pair wins.
func (r *SimpleFieldValueRepository) Upsert(ctx context.Context, entityID shareddomain.ID, pairs []domain.FieldValuePair) error {
	if len(pairs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows, order, err := toValueRows(entityID, pairs, now)
	if err != nil {
		return err
	}

	var previous []internal.CustomFieldValue
	err = r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		err := tx.
			Where("entity_id = ? AND field_id IN ?", entityID.String(), order).
			Find(&previous).
			Error()
		if err != nil {
			return fmt.Errorf("reading previous values: %w", err)
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entity_id"}, {Name: "field_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).
			Create(&rows).
			Error()
	})
	if err != nil {
		return fmt.Errorf("database upsert: %w", err)
	}

	r.publishChanges(ctx, entityID, previous, rows, now)
	return nil
}

func toValueRows(entityID shareddomain.ID, pairs []domain.FieldValuePair, now time.Time) ([]internal.CustomFieldValue, []string, error) {
	latest := make(map[string]domain.Value, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		fieldID := pair.FieldID.String()
		if _, found := latest[fieldID]; !found {
			order = append(order, fieldID)
		}
		latest[fieldID] = pair.Value
	}

	rows := make([]internal.CustomFieldValue, 0, len(order))
	for _, fieldID := range order {
		raw, err := internal.FromValue(latest[fieldID])
		if err != nil {
			return nil, nil, fmt.Errorf("encoding value of field %s: %w", fieldID, err)
		}
		rows = append(rows, internal.CustomFieldValue{
			EntityID:  entityID.String(),
			FieldID:   fieldID,
			Value:     raw,
			UpdatedAt: now,
		})
	}
	return rows, order, nil
}

func (r *SimpleFieldValueRepository) publishChanges(ctx context.Context, entityID shareddomain.ID, previous, rows []internal.CustomFieldValue, now time.Time) {
	before := make(map[string]internal.RawValue, len(previous))
	for _, row := range previous {
		before[row.FieldID] = row.Value
	}
	actor := shareddomain.ActorFromContext(ctx)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(_maxConcurrentPublishes)
	for _, row := range rows {
		oldValue, err := before[row.FieldID].ToDomain()
		if err != nil {
			slog.Warn("decoding previous value", slog.String("field_id", row.FieldID), slog.String("error", err.Error()))
		}
		newValue, _ := row.Value.ToDomain()

		change := domain.ValueChange{
			EntityID:  entityID,
			FieldID:   shareddomain.ID(row.FieldID),
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: actor,
			ChangedAt: now,
		}
		if change.IsNoop() {
			continue
		}

		group.Go(func() error {
			return r.publisher.Publish(groupCtx, pubsub.Key(entityID), change)
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("publishing value changes", slog.String("entity_id", entityID.String()), slog.String("error", err.Error()))
	}
}
