package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"prospectar-server/internal/infra/async"
	"prospectar-server/internal/infra/pubsub"
	"prospectar-server/internal/shared_kernel/avro"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

func NewCacheInvalidationWorker(consumerFactory pubsub.ConsumerFactory, definitions FieldDefinitionService) *CacheInvalidationWorker {
	return &CacheInvalidationWorker{
		consumer:    consumerFactory.New(),
		definitions: definitions,
	}
}

var _ async.Worker = (*CacheInvalidationWorker)(nil)

// CacheInvalidationWorker drops the cached definition list of a tenant when
// any replica publishes a definition change.
type CacheInvalidationWorker struct {
	consumer    pubsub.Consumer
	definitions FieldDefinitionService
}

func (w *CacheInvalidationWorker) Run(ctx context.Context, done func()) {
	defer done()
	slog.Debug("cache invalidation worker started", slog.String("topic", string(DefinitionsTopic)))

	err := w.consumer.Consume(ctx, DefinitionsTopic, w.handle, &avro.AvroCustomField{})
	if err != nil && ctx.Err() == nil {
		slog.Error("consuming custom field changes", slog.String("error", err.Error()))
		return
	}

	slog.Info("cache invalidation worker cancelled")
}

func (w *CacheInvalidationWorker) handle(ctx context.Context, key pubsub.Key, message pubsub.Prototype) error {
	field, ok := message.(*avro.AvroCustomField)
	if !ok {
		return fmt.Errorf("unexpected custom field message %T", message)
	}

	slog.Debug("invalidating custom field cache", slog.String("key", string(key)), slog.String("tenant_id", field.TenantID))
	w.definitions.Invalidate(ctx, shareddomain.ID(field.TenantID))
	return nil
}

func (w *CacheInvalidationWorker) Shutdown() {
	slog.Debug("cache invalidation worker stops with its context")
}
