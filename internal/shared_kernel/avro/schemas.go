package avro

import (
	"embed"
	"fmt"
	"reflect"
)

//go:embed schemas/*.avsc
var schemaFiles embed.FS

const (
	CustomFieldSchema      = "custom_field"
	CustomFieldValueSchema = "custom_field_value"
)

func loadSchema(name string) (string, error) {
	data, err := schemaFiles.ReadFile("schemas/" + name + ".avsc")
	if err != nil {
		return "", fmt.Errorf("reading schema %s: %w", name, err)
	}
	return string(data), nil
}

func schemaNameOf(value any) (string, error) {
	valueType := reflect.TypeOf(value)
	if valueType == nil {
		return "", fmt.Errorf("no Avro schema found for nil message")
	}
	if valueType.Kind() == reflect.Ptr {
		valueType = valueType.Elem()
	}

	switch valueType.Name() {
	case "FieldDefinition", "AvroCustomField":
		return CustomFieldSchema, nil
	case "ValueChange", "AvroCustomFieldValue":
		return CustomFieldValueSchema, nil
	default:
		return "", fmt.Errorf("no Avro schema found for message type: %s", valueType.Name())
	}
}
