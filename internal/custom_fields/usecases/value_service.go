package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/validation"
	"prospectar-server/internal/infra/async"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

//go:generate mockgen -source=value_service.go -destination=../../../test/unit/doubles/custom_fields/usecases/value_service_mock.go -package=usecases -mock_names=FieldValueService=MockFieldValueService

const _valueChangeEvent = "custom_field_value_changed"

type FieldValueService interface {
	ValueStore
}

func NewFieldValueService(definitions FieldDefinitionService, repository FieldValueRepository, broker async.InternalBroker) *SimpleFieldValueService {
	return &SimpleFieldValueService{
		definitions: definitions,
		repository:  repository,
		broker:      broker,
	}
}

var _ FieldValueService = (*SimpleFieldValueService)(nil)

type SimpleFieldValueService struct {
	definitions FieldDefinitionService
	repository  FieldValueRepository
	broker      async.InternalBroker
}

func (s *SimpleFieldValueService) GetForEntity(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error) {
	values, err := s.repository.FindByEntity(ctx, entityID)
	if err != nil {
		slog.Error("getting custom field values", slog.String("entity_id", entityID.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("getting custom field values: %w", err)
	}

	return values, nil
}

// SetMany validates the whole batch before storing any pair. A pair naming a
// vanished field fails with domain.NotFoundError. A failed store returns a
// domain.WriteError without telling which pairs were kept.
func (s *SimpleFieldValueService) SetMany(ctx context.Context, entityID shareddomain.ID, pairs []domain.FieldValuePair) error {
	if len(pairs) == 0 {
		return nil
	}

	fields, err := s.fieldsOf(ctx, pairs)
	if err != nil {
		return err
	}

	if err := validation.ValidateAll(fields, pairs); err != nil {
		return err
	}

	previous, err := s.repository.FindByEntity(ctx, entityID)
	if err != nil {
		slog.Error("reading previous custom field values", slog.String("entity_id", entityID.String()), slog.String("error", err.Error()))
		return domain.WriteError{EntityID: entityID, Err: err}
	}

	if err := s.repository.Upsert(ctx, entityID, pairs); err != nil {
		slog.Error("storing custom field values", slog.String("entity_id", entityID.String()), slog.String("error", err.Error()))
		return domain.WriteError{EntityID: entityID, Err: err}
	}

	s.publishChanges(ctx, entityID, previous, pairs)
	return nil
}

func (s *SimpleFieldValueService) fieldsOf(ctx context.Context, pairs []domain.FieldValuePair) ([]domain.FieldDefinition, error) {
	fields := make([]domain.FieldDefinition, 0, len(pairs))
	seen := make(map[shareddomain.ID]struct{}, len(pairs))
	for _, pair := range pairs {
		if _, found := seen[pair.FieldID]; found {
			continue
		}
		seen[pair.FieldID] = struct{}{}

		field, err := s.definitions.Get(ctx, pair.FieldID)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (s *SimpleFieldValueService) publishChanges(ctx context.Context, entityID shareddomain.ID, previous map[shareddomain.ID]domain.Value, pairs []domain.FieldValuePair) {
	actor := shareddomain.ActorFromContext(ctx)
	now := time.Now().UTC()

	for _, pair := range pairs {
		change := domain.ValueChange{
			EntityID:  entityID,
			FieldID:   pair.FieldID,
			OldValue:  previous[pair.FieldID],
			NewValue:  pair.Value,
			ChangedBy: actor,
			ChangedAt: now,
		}
		if change.IsNoop() {
			continue
		}

		err := s.broker.Publish(ctx, ValueChangesBrokerTopic, async.BrokerMessage{
			Event: _valueChangeEvent,
			Value: change,
		})
		if errors.Is(err, async.ErrTopicNotFound) {
			slog.Debug("no subscribers for value changes", slog.String("entity_id", entityID.String()))
			return
		}
		if err != nil {
			slog.Error("publishing value change", slog.String("entity_id", entityID.String()), slog.String("error", err.Error()))
		}
	}
}
