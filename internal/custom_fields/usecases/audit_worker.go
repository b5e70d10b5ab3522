package usecases

import (
	"context"
	"log/slog"
	"sync"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/infra/async"
)

func NewAuditWorker(broker async.InternalBroker, auditService AuditService) *AuditWorker {
	return &AuditWorker{
		broker:       broker,
		auditService: auditService,
	}
}

var _ async.Worker = (*AuditWorker)(nil)

// AuditWorker persists the value changes published by the value service.
type AuditWorker struct {
	broker       async.InternalBroker
	auditService AuditService
	subscription async.Subscription
	mu           sync.Mutex
}

func (w *AuditWorker) Run(ctx context.Context, done func()) {
	slog.Debug("audit worker started")
	defer done()

	subscription, err := w.broker.Subscribe(ValueChangesBrokerTopic)
	if err != nil {
		slog.Error("subscribing to value changes", slog.String("error", err.Error()))
		return
	}
	w.mu.Lock()
	w.subscription = subscription
	w.mu.Unlock()

	defer func() {
		if err := w.broker.Unsubscribe(ValueChangesBrokerTopic, subscription); err != nil {
			slog.Error("unsubscribing from value changes", slog.String("error", err.Error()))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit worker cancelled")
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				slog.Info("audit worker subscription closed")
				return
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *AuditWorker) handle(ctx context.Context, msg async.BrokerMessage) {
	change, ok := msg.Value.(domain.ValueChange)
	if !ok {
		slog.Warn("unexpected value change message", slog.String("event", msg.Event))
		return
	}

	if err := w.auditService.Record(ctx, change); err != nil {
		slog.Error("auditing value change",
			slog.String("entity_id", change.EntityID.String()),
			slog.String("field_id", change.FieldID.String()),
			slog.String("error", err.Error()))
	}
}

func (w *AuditWorker) Shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.subscription.ID == "" {
		return
	}
	if err := w.broker.Unsubscribe(ValueChangesBrokerTopic, w.subscription); err != nil {
		slog.Warn("shutting down audit worker", slog.String("error", err.Error()))
	}
}
