package usecases

import (
	"context"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/infra/async"
	"prospectar-server/internal/infra/pubsub"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/custom_fields/usecases/port_mock.go -package=usecases -mock_names=DefinitionStore=MockDefinitionStore,ValueStore=MockValueStore

const (
	DefinitionsTopic pubsub.Topic = "custom_fields"
	ValuesTopic      pubsub.Topic = "custom_field_values"

	ValueChangesBrokerTopic async.BrokerTopicName = "custom_field_value_changes"
)

// DefinitionStore is the record store of field definitions. It is served
// locally by SimpleFieldDefinitionService and remotely by the HTTP client.
type DefinitionStore interface {
	List(ctx context.Context, tenantID shareddomain.ID) ([]domain.FieldDefinition, error)
	Create(ctx context.Context, spec domain.FieldDefinitionSpec) (domain.FieldDefinition, error)
	Update(ctx context.Context, id shareddomain.ID, patch domain.FieldDefinitionPatch) (domain.FieldDefinition, error)
	Delete(ctx context.Context, id shareddomain.ID) error
}

// ValueStore is the record store of field values. SetMany may store a
// subset of the pairs before failing; callers re-read to learn the outcome.
type ValueStore interface {
	GetForEntity(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error)
	SetMany(ctx context.Context, entityID shareddomain.ID, pairs []domain.FieldValuePair) error
}
