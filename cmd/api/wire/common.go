//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"prospectar-server/cmd/config"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/cache"
	"prospectar-server/internal/infra/node"
	"prospectar-server/internal/infra/pubsub"
	"prospectar-server/internal/infra/sql"
)

const (
	_localEnvironment = "local"
	_memoryDatabase   = "prospectar"
	_migrationTimeout = time.Minute
)

var (
	databaseOnce     sync.Once
	databaseInstance sql.ORM
	databaseErr      error

	definitionsCacheOnce     sync.Once
	definitionsCacheInstance cache.Cache
	definitionsCacheErr      error
)

func environment() string {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}
	return env
}

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func providePubSubFactory(config config.AppConfig) *pubsub.Factory {
	return pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:       environment(),
		KafkaBrokers:      config.Kafka.Brokers,
		ConsumerGroup:     config.Kafka.Group,
		SchemaRegistryURL: config.Kafka.SchemaRegistry,
	})
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}

// Every replica holds its own definitions cache, so each one joins the
// definitions topic under a group of its own.
func provideCacheInvalidationConsumerFactory(config config.AppConfig) pubsub.ConsumerFactory {
	factory := pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:       environment(),
		KafkaBrokers:      config.Kafka.Brokers,
		ConsumerGroup:     fmt.Sprintf("%s-cache-%s", config.Kafka.Group, node.GetInfo().Hostname),
		SchemaRegistryURL: config.Kafka.SchemaRegistry,
	})
	return factory.GetConsumerFactory()
}

func provideDatabase(config config.AppConfig) (sql.ORM, error) {
	databaseOnce.Do(func() {
		if environment() == _localEnvironment {
			databaseInstance, databaseErr = sql.NewMemoryORM(_memoryDatabase)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), _migrationTimeout)
		defer cancel()

		db := sql.NewPostgreDatabase(config.Postgresql.URL)
		if err := db.Open(ctx); err != nil {
			databaseErr = err
			return
		}
		if err := db.Up(ctx, config.Postgresql.MigrationReplacements); err != nil {
			databaseErr = err
			return
		}

		databaseInstance, databaseErr = sql.NewPostgreORM(config.Postgresql.DSN, config.Postgresql.Timeout, false)
	})

	return databaseInstance, databaseErr
}

// The definitions cache is shared by every injector so an invalidation
// reaches the list served by the controllers.
func provideDefinitionsCache(config config.AppConfig) (cache.Cache, error) {
	definitionsCacheOnce.Do(func() {
		if config.Redis.Addr == "" {
			definitionsCacheInstance, definitionsCacheErr = cache.New(cache.DefaultConfig())
			return
		}

		redisConfig := cache.DefaultRedisConfig()
		redisConfig.Addr = config.Redis.Addr
		redisConfig.Password = config.Redis.Password
		redisConfig.DB = config.Redis.DB
		definitionsCacheInstance, definitionsCacheErr = cache.NewRedisCache(redisConfig)
	})

	return definitionsCacheInstance, definitionsCacheErr
}

func provideFieldDefinitionService(config config.AppConfig, repository usecases.FieldDefinitionRepository, definitionsCache cache.Cache) *usecases.SimpleFieldDefinitionService {
	return usecases.NewFieldDefinitionService(repository, definitionsCache, config.Cache.DefinitionsTTL)
}

func provideRetentionConfig(config config.AppConfig) usecases.RetentionConfig {
	return usecases.RetentionConfig{
		Days:     config.Audit.RetentionDays,
		Schedule: config.Audit.RetentionSchedule,
	}
}
