package driver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"time"

	"prospectar-server/internal/custom_fields/httpapi"
	"prospectar-server/internal/custom_fields/persistence"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/async"
	"prospectar-server/internal/infra/cache"
	"prospectar-server/internal/infra/httpserver"
	"prospectar-server/internal/infra/pubsub"
	"prospectar-server/internal/infra/sql"
	"prospectar-server/internal/infra/utils"
)

// App runs the whole server in process over sqlite and the memory broker.
type App struct {
	URL string

	server *httptest.Server
	broker *async.LocalBroker
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func StartApp() (*App, error) {
	orm, err := sql.NewMemoryORM("functional-" + utils.GenerateUUID())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	messages := pubsub.NewMemoryBroker()
	publisherFactory := pubsub.NewMemoryPublisherFactoryWithBroker(messages)

	definitionRepository, err := persistence.NewFieldDefinitionRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	valueRepository, err := persistence.NewFieldValueRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	auditRepository, err := persistence.NewAuditRepository(orm)
	if err != nil {
		return nil, err
	}

	definitionsCache, err := cache.New(cache.DefaultConfig())
	if err != nil {
		return nil, err
	}

	app := &App{broker: async.NewLocalBroker()}
	definitions := usecases.NewFieldDefinitionService(definitionRepository, definitionsCache, time.Minute)
	values := usecases.NewFieldValueService(definitions, valueRepository, app.broker)
	audit := usecases.NewAuditService(auditRepository)

	workers := []async.Worker{
		usecases.NewAuditWorker(app.broker, audit),
		usecases.NewCacheInvalidationWorker(pubsub.NewMemoryConsumerFactoryWithBroker(messages, "functional"), definitions),
	}

	var ctx context.Context
	ctx, app.cancel = context.WithCancel(context.Background())
	for _, worker := range workers {
		app.wg.Add(1)
		go worker.Run(ctx, app.wg.Done)
	}

	api := httpserver.NewServer(httpserver.ServerConfig{},
		httpapi.NewCustomFieldController(definitions),
		httpapi.NewCustomFieldValueController(values, audit),
	)
	app.server = httptest.NewServer(api.Handler())
	app.URL = app.server.URL
	return app, nil
}

func (a *App) Stop() {
	a.server.Close()
	a.cancel()
	a.wg.Wait()
	a.broker.Stop()
}
