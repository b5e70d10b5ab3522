package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lovoo/goka"
)

const (
	maxRetries int = 10
	retryDelay     = 5 * time.Second
)

type publisherKey struct {
	brokers           string
	topic             string
	prototypeType     string
	schemaRegistryURL string
}

type publisherInstance struct {
	publisher *SimpleKafkaPublisher
	once      sync.Once
	err       error
}

// Emitters are shared per configuration; goka emitters are safe for concurrent use.
var (
	publishersMap   = make(map[publisherKey]*publisherInstance)
	publishersMutex sync.Mutex
)

func NewKafkaPublisher(brokers []string, topic string, prototype any, schemaRegistryURL string) (*SimpleKafkaPublisher, error) {
	key := publisherKey{
		brokers:           strings.Join(brokers, ","),
		topic:             topic,
		prototypeType:     fmt.Sprintf("%T", prototype),
		schemaRegistryURL: schemaRegistryURL,
	}

	publishersMutex.Lock()
	instance, exists := publishersMap[key]
	if !exists {
		instance = &publisherInstance{}
		publishersMap[key] = instance
	}
	publishersMutex.Unlock()

	instance.once.Do(func() {
		slog.Debug("creating kafka publisher",
			slog.String("schemaRegistryURL", schemaRegistryURL),
			slog.String("topic", topic),
			slog.String("prototypeType", key.prototypeType))

		codec, err := newCodec(prototype, schemaRegistryURL)
		if err != nil {
			instance.err = err
			return
		}

		for try := 0; try < maxRetries; try++ {
			slog.Debug("connecting to kafka brokers", slog.String("brokers", key.brokers), slog.Int("attempt", try+1))
			emitter, err := goka.NewEmitter(brokers, goka.Stream(topic), codec)
			if err == nil {
				instance.publisher = &SimpleKafkaPublisher{emitter: emitter}
				return
			}
			time.Sleep(retryDelay)
		}

		instance.err = fmt.Errorf("imposible to connect to kafka brokers after %d retries", maxRetries)
	})

	if instance.err != nil {
		return nil, instance.err
	}

	return instance.publisher, nil
}

type SimpleKafkaPublisher struct {
	emitter *goka.Emitter
}

var _ Publisher = (*SimpleKafkaPublisher)(nil)

func (p *SimpleKafkaPublisher) Publish(_ context.Context, key Key, message Message) error {
	slog.Debug("publishing message", slog.String("key", string(key)))
	if err := p.emitter.EmitSync(string(key), message); err != nil {
		slog.Error("emitting message", slog.String("error", err.Error()))
		return err
	}

	return nil
}

// ClosePublishers flushes and closes every emitter; call once on shutdown.
func ClosePublishers() {
	publishersMutex.Lock()
	defer publishersMutex.Unlock()

	for key, instance := range publishersMap {
		if instance.publisher == nil {
			continue
		}
		if err := instance.publisher.emitter.Finish(); err != nil {
			slog.Error("closing kafka publisher", slog.String("topic", key.topic), slog.String("error", err.Error()))
		}
	}
	publishersMap = make(map[publisherKey]*publisherInstance)
}

var _ Consumer = (*SimpleKafkaConsumer)(nil)

type SimpleKafkaConsumer struct {
	brokers           []string
	group             goka.Group
	schemaRegistryURL string
}

func NewKafkaConsumer(brokers []string, group string, schemaRegistryURL string) *SimpleKafkaConsumer {
	return &SimpleKafkaConsumer{
		brokers:           brokers,
		group:             goka.Group(group),
		schemaRegistryURL: schemaRegistryURL,
	}
}

func (c *SimpleKafkaConsumer) Consume(ctx context.Context, topic Topic, handler MessageHandler, prototype Prototype) error {
	codec, err := newCodec(prototype, c.schemaRegistryURL)
	if err != nil {
		return err
	}

	cb := func(gctx goka.Context, msg any) {
		if err := handler(ctx, Key(gctx.Key()), msg); err != nil {
			slog.Error("handling message",
				slog.String("topic", string(topic)),
				slog.String("key", gctx.Key()),
				slog.String("error", err.Error()))
		}
	}

	group := goka.DefineGroup(
		c.group,
		goka.Input(goka.Stream(topic), codec, cb),
	)
	processor, err := goka.NewProcessor(c.brokers, group)
	if err != nil {
		return fmt.Errorf("creating kafka processor: %w", err)
	}

	return processor.Run(ctx)
}
