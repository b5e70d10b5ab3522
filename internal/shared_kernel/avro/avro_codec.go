package avro

import (
	"fmt"

	"prospectar-server/internal/custom_fields/domain"

	"github.com/hamba/avro/v2"
)

// AvroCodec encodes messages with the embedded schemas, without a registry.
// The payload carries no schema id, so producer and consumer must agree on
// the schema version out of band.
type AvroCodec struct {
	prototype any
	schemas   map[string]avro.Schema
}

func NewAvroCodec(prototype any) (*AvroCodec, error) {
	schemas := make(map[string]avro.Schema)
	for _, name := range []string{CustomFieldSchema, CustomFieldValueSchema} {
		raw, err := loadSchema(name)
		if err != nil {
			return nil, err
		}
		schema, err := avro.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing schema %s: %w", name, err)
		}
		schemas[name] = schema
	}

	return &AvroCodec{
		prototype: prototype,
		schemas:   schemas,
	}, nil
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	avroValue, err := toAvroStruct(value)
	if err != nil {
		return nil, fmt.Errorf("converting to Avro struct: %w", err)
	}

	schemaName, err := schemaNameOf(avroValue)
	if err != nil {
		return nil, err
	}

	data, err := avro.Marshal(c.schemas[schemaName], avroValue)
	if err != nil {
		return nil, fmt.Errorf("marshaling to Avro: %w", err)
	}

	return data, nil
}

// Decode always yields the Avro struct matching the prototype's schema.
func (c *AvroCodec) Decode(data []byte) (any, error) {
	schemaName, err := schemaNameOf(c.prototype)
	if err != nil {
		return nil, err
	}

	var instance any
	switch schemaName {
	case CustomFieldSchema:
		instance = &AvroCustomField{}
	default:
		instance = &AvroCustomFieldValue{}
	}

	if err := avro.Unmarshal(c.schemas[schemaName], data, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling from Avro: %w", err)
	}

	return instance, nil
}

func toAvroStruct(value any) (any, error) {
	switch v := value.(type) {
	case *AvroCustomField, *AvroCustomFieldValue:
		return v, nil
	case AvroCustomField:
		return &v, nil
	case AvroCustomFieldValue:
		return &v, nil
	case domain.FieldDefinition:
		return ToAvroCustomField(v), nil
	case *domain.FieldDefinition:
		return ToAvroCustomField(*v), nil
	case domain.ValueChange:
		return ToAvroCustomFieldValue(v), nil
	case *domain.ValueChange:
		return ToAvroCustomFieldValue(*v), nil
	default:
		return nil, fmt.Errorf("unsupported message type for Avro conversion: %T", value)
	}
}
