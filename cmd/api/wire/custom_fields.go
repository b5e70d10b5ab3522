//go:build wireinject
// +build wireinject

package wire

import (
	"prospectar-server/internal/custom_fields/httpapi"
	"prospectar-server/internal/custom_fields/persistence"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/async"

	"github.com/google/wire"
)

var FieldDefinitionServiceSet = wire.NewSet(
	providePubSubFactory,
	providePublisherFactory,
	provideDatabase,
	provideDefinitionsCache,
	persistence.NewFieldDefinitionRepository,
	wire.Bind(new(usecases.FieldDefinitionRepository), new(*persistence.SimpleFieldDefinitionRepository)),
	provideFieldDefinitionService,
	wire.Bind(new(usecases.FieldDefinitionService), new(*usecases.SimpleFieldDefinitionService)),
)

var AuditServiceSet = wire.NewSet(
	persistence.NewAuditRepository,
	wire.Bind(new(usecases.AuditRepository), new(*persistence.SimpleAuditRepository)),
	usecases.NewAuditService,
	wire.Bind(new(usecases.AuditService), new(*usecases.SimpleAuditService)),
)

func InitializeCustomFieldController() (*httpapi.CustomFieldController, error) {
	wire.Build(
		provideAppConfig,
		FieldDefinitionServiceSet,
		httpapi.NewCustomFieldController,
	)
	return nil, nil
}

func InitializeCustomFieldValueController(broker async.InternalBroker) (*httpapi.CustomFieldValueController, error) {
	wire.Build(
		provideAppConfig,
		FieldDefinitionServiceSet,
		persistence.NewFieldValueRepository,
		wire.Bind(new(usecases.FieldValueRepository), new(*persistence.SimpleFieldValueRepository)),
		usecases.NewFieldValueService,
		wire.Bind(new(usecases.FieldValueService), new(*usecases.SimpleFieldValueService)),
		AuditServiceSet,
		httpapi.NewCustomFieldValueController,
	)
	return nil, nil
}

func InitializeAuditWorker(broker async.InternalBroker) (*usecases.AuditWorker, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		AuditServiceSet,
		usecases.NewAuditWorker,
	)
	return nil, nil
}

func InitializeRetentionWorker() (*usecases.RetentionWorker, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		provideRetentionConfig,
		AuditServiceSet,
		usecases.NewRetentionWorker,
	)
	return nil, nil
}

func InitializeCacheInvalidationWorker() (*usecases.CacheInvalidationWorker, error) {
	wire.Build(
		provideAppConfig,
		provideCacheInvalidationConsumerFactory,
		FieldDefinitionServiceSet,
		usecases.NewCacheInvalidationWorker,
	)
	return nil, nil
}
