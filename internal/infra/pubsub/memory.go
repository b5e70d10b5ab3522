package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// MemoryPublisherFactory publishes through an in-process broker. Messages go
// through the same Avro codec as Kafka so consumers see identical types.
type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

var _ PublisherFactory = (*MemoryPublisherFactory)(nil)

func NewMemoryPublisherFactory() *MemoryPublisherFactory {
	return NewMemoryPublisherFactoryWithBroker(GetMemoryBroker())
}

func NewMemoryPublisherFactoryWithBroker(broker *MemoryBroker) *MemoryPublisherFactory {
	return &MemoryPublisherFactory{broker: broker}
}

func (f *MemoryPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	codec, err := newCodec(prototype, "")
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	return &MemoryPublisher{
		broker: f.broker,
		topic:  topic,
		codec:  codec,
	}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
	codec  Codec
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	data, err := p.codec.Encode(message)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	p.broker.Publish(ctx, p.topic, key, data)
	return nil
}

type MemoryConsumerFactory struct {
	broker *MemoryBroker
	group  string
}

var _ ConsumerFactory = (*MemoryConsumerFactory)(nil)

func NewMemoryConsumerFactory(group string) *MemoryConsumerFactory {
	return NewMemoryConsumerFactoryWithBroker(GetMemoryBroker(), group)
}

func NewMemoryConsumerFactoryWithBroker(broker *MemoryBroker, group string) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{
		broker: broker,
		group:  group,
	}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{
		broker: f.broker,
		group:  f.group,
	}
}

type MemoryConsumer struct {
	broker *MemoryBroker
	group  string
}

func (c *MemoryConsumer) Consume(ctx context.Context, topic Topic, handler MessageHandler, prototype Prototype) error {
	codec, err := newCodec(prototype, "")
	if err != nil {
		return err
	}

	unsubscribe := c.broker.Subscribe(topic, c.group, func(msgCtx context.Context, key Key, data []byte) {
		value, err := codec.Decode(data)
		if err != nil {
			slog.Error("decoding message", slog.String("topic", string(topic)), slog.String("error", err.Error()))
			return
		}
		if err := handler(msgCtx, key, value); err != nil {
			slog.Error("handling message", slog.String("topic", string(topic)), slog.String("error", err.Error()))
		}
	})
	defer unsubscribe()

	<-ctx.Done()
	return nil
}

type MemoryMessage struct {
	Key  Key
	Data []byte
}

type memoryHandler func(context.Context, Key, []byte)

type memorySubscription struct {
	id      int
	handler memoryHandler
}

// MemoryBroker delivers synchronously to one subscriber per group and keeps
// every message for inspection.
type MemoryBroker struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[Topic]map[string][]memorySubscription
	messages    map[Topic][]MemoryMessage
}

var (
	memoryBroker     *MemoryBroker
	memoryBrokerOnce sync.Once
)

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subscribers: make(map[Topic]map[string][]memorySubscription),
		messages:    make(map[Topic][]MemoryMessage),
	}
}

func GetMemoryBroker() *MemoryBroker {
	memoryBrokerOnce.Do(func() {
		memoryBroker = NewMemoryBroker()
	})
	return memoryBroker
}

func (b *MemoryBroker) Publish(ctx context.Context, topic Topic, key Key, data []byte) {
	b.mu.Lock()
	b.messages[topic] = append(b.messages[topic], MemoryMessage{Key: key, Data: data})
	targets := make([]memoryHandler, 0, len(b.subscribers[topic]))
	for _, group := range b.subscribers[topic] {
		if len(group) > 0 {
			targets = append(targets, group[0].handler)
		}
	}
	b.mu.Unlock()

	deliveryCtx := context.WithoutCancel(ctx)
	for _, handler := range targets {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic in message handler", slog.Any("panic", r), slog.String("topic", string(topic)))
				}
			}()
			handler(deliveryCtx, key, data)
		}()
	}
}

func (b *MemoryBroker) Subscribe(topic Topic, group string, handler memoryHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[string][]memorySubscription)
	}
	b.subscribers[topic][group] = append(b.subscribers[topic][group], memorySubscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subscribers[topic][group]
		for i, sub := range subs {
			if sub.id == id {
				b.subscribers[topic][group] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Messages returns what was published on the topic, oldest first.
func (b *MemoryBroker) Messages(topic Topic) []MemoryMessage {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return append([]MemoryMessage(nil), b.messages[topic]...)
}

func (b *MemoryBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = make(map[Topic]map[string][]memorySubscription)
	b.messages = make(map[Topic][]MemoryMessage)
}
