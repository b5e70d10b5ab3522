package pubsub

import (
	"fmt"

	"prospectar-server/internal/shared_kernel/avro"
)

// newCodec picks the Confluent wire format when a registry is configured.
func newCodec(prototype any, schemaRegistryURL string) (Codec, error) {
	if schemaRegistryURL != "" {
		return avro.NewConfluentAvroCodec(prototype, avro.NewSchemaRegistryClient(schemaRegistryURL)), nil
	}

	codec, err := avro.NewAvroCodec(prototype)
	if err != nil {
		return nil, fmt.Errorf("creating Avro codec: %w", err)
	}
	return codec, nil
}
