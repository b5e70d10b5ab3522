package avro

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"sync"
	"time"

	"prospectar-server/internal/infra/cache"

	"github.com/linkedin/goavro/v2"
	"github.com/riferrei/srclient"
)

const (
	_defaultSchemaCacheTTL = 5 * time.Minute
	_subjectSuffix         = "-value"
	_magicByte             = 0
)

// SchemaRegistry is the subset of the Confluent registry client in use
type SchemaRegistry interface {
	GetLatestSchema(subject string) (*srclient.Schema, error)
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
	GetSchema(schemaID int) (*srclient.Schema, error)
}

var _ SchemaRegistry = (*srclient.SchemaRegistryClient)(nil)

// ConfluentAvroCodec writes the Confluent wire format: a zero magic byte,
// the big-endian schema id, then the Avro binary body.
type ConfluentAvroCodec struct {
	prototype      any
	schemaRegistry SchemaRegistry
	schemaCache    cache.Cache
	codecs         sync.Map
}

func NewConfluentAvroCodec(prototype any, schemaRegistry SchemaRegistry) *ConfluentAvroCodec {
	schemaCache, _ := cache.New(&cache.CacheConfig{
		MaxCost:     1 << 20,
		NumCounters: 1e4,
		BufferItems: 64,
	})

	return &ConfluentAvroCodec{
		prototype:      prototype,
		schemaRegistry: schemaRegistry,
		schemaCache:    schemaCache,
	}
}

func NewSchemaRegistryClient(url string) *srclient.SchemaRegistryClient {
	return srclient.CreateSchemaRegistryClient(url)
}

func (c *ConfluentAvroCodec) getOrRegisterSchemaID(ctx context.Context, schemaName string) (int, error) {
	subject := schemaName + _subjectSuffix

	raw, err := c.schemaCache.GetOrSet(ctx, subject, _defaultSchemaCacheTTL, func(context.Context) ([]byte, error) {
		registered, err := c.schemaRegistry.GetLatestSchema(subject)
		if err == nil && registered != nil {
			return []byte(strconv.Itoa(registered.ID())), nil
		}

		schema, err := loadSchema(schemaName)
		if err != nil {
			return nil, err
		}

		created, err := c.schemaRegistry.CreateSchema(subject, schema, srclient.Avro)
		if err != nil {
			return nil, fmt.Errorf("registering schema: %w", err)
		}
		return []byte(strconv.Itoa(created.ID())), nil
	})
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(string(raw))
}

// getCodecByID keeps codecs for the process lifetime; a schema id never changes content.
func (c *ConfluentAvroCodec) getCodecByID(schemaID int) (*goavro.Codec, error) {
	if cached, ok := c.codecs.Load(schemaID); ok {
		return cached.(*goavro.Codec), nil
	}

	schema, err := c.schemaRegistry.GetSchema(schemaID)
	if err != nil {
		return nil, fmt.Errorf("fetching schema from registry: %w", err)
	}

	codec, err := goavro.NewCodec(schema.Schema())
	if err != nil {
		return nil, fmt.Errorf("creating codec from schema: %w", err)
	}

	actual, _ := c.codecs.LoadOrStore(schemaID, codec)
	return actual.(*goavro.Codec), nil
}

func (c *ConfluentAvroCodec) Encode(value any) ([]byte, error) {
	avroValue, err := toAvroStruct(value)
	if err != nil {
		return nil, fmt.Errorf("converting to Avro struct: %w", err)
	}

	schemaName, err := schemaNameOf(avroValue)
	if err != nil {
		return nil, fmt.Errorf("getting schema for message: %w", err)
	}

	schemaID, err := c.getOrRegisterSchemaID(context.Background(), schemaName)
	if err != nil {
		return nil, fmt.Errorf("getting schema ID: %w", err)
	}

	codec, err := c.getCodecByID(schemaID)
	if err != nil {
		return nil, fmt.Errorf("getting codec by schema ID: %w", err)
	}

	avroData, err := codec.BinaryFromNative(nil, toNative(avroValue))
	if err != nil {
		return nil, fmt.Errorf("encoding to Avro: %w", err)
	}

	result := make([]byte, 5+len(avroData))
	result[0] = _magicByte
	binary.BigEndian.PutUint32(result[1:5], uint32(schemaID))
	copy(result[5:], avroData)

	return result, nil
}

func (c *ConfluentAvroCodec) Decode(data []byte) (any, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("invalid Avro data: too short")
	}
	if data[0] != _magicByte {
		return nil, fmt.Errorf("invalid magic byte: expected 0, got %d", data[0])
	}
	schemaID := int(binary.BigEndian.Uint32(data[1:5]))

	codec, err := c.getCodecByID(schemaID)
	if err != nil {
		return nil, fmt.Errorf("getting codec by schema ID: %w", err)
	}

	native, _, err := codec.NativeFromBinary(data[5:])
	if err != nil {
		return nil, fmt.Errorf("decoding Avro data: %w", err)
	}

	record, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decoding Avro data: unexpected native type %T", native)
	}

	schemaName, err := schemaNameOf(c.prototype)
	if err != nil {
		return nil, err
	}

	return fromNative(schemaName, record), nil
}

func toNative(value any) map[string]any {
	switch v := value.(type) {
	case *AvroCustomField:
		var deletedAt any
		if v.DeletedAt != nil {
			deletedAt = goavro.Union("long.timestamp-millis", *v.DeletedAt)
		}
		return map[string]any{
			"id":               v.ID,
			"version":          int32(v.Version),
			"tenant_id":        v.TenantID,
			"name":             v.Name,
			"type":             v.Type,
			"options":          stringsToNative(v.Options),
			"required":         v.Required,
			"shown_in_summary": v.ShownInSummary,
			"hidden_tabs":      stringsToNative(v.HiddenTabs),
			"rules":            v.Rules,
			"created_at":       v.CreatedAt,
			"updated_at":       v.UpdatedAt,
			"deleted_at":       deletedAt,
		}
	case *AvroCustomFieldValue:
		return map[string]any{
			"entity_id":   v.EntityID,
			"field_id":    v.FieldID,
			"change_type": v.ChangeType,
			"old_kind":    v.OldKind,
			"old_items":   stringsToNative(v.OldItems),
			"new_kind":    v.NewKind,
			"new_items":   stringsToNative(v.NewItems),
			"changed_by":  v.ChangedBy,
			"changed_at":  v.ChangedAt,
		}
	default:
		return nil
	}
}

func fromNative(schemaName string, record map[string]any) any {
	if schemaName == CustomFieldSchema {
		message := &AvroCustomField{
			ID:             getString(record, "id"),
			Version:        getInt(record, "version"),
			TenantID:       getString(record, "tenant_id"),
			Name:           getString(record, "name"),
			Type:           getString(record, "type"),
			Options:        getStrings(record, "options"),
			Required:       getBool(record, "required"),
			ShownInSummary: getBool(record, "shown_in_summary"),
			HiddenTabs:     getStrings(record, "hidden_tabs"),
			Rules:          getString(record, "rules"),
			CreatedAt:      getTime(record, "created_at"),
			UpdatedAt:      getTime(record, "updated_at"),
		}
		if union, ok := record["deleted_at"].(map[string]any); ok {
			if t, ok := union["long.timestamp-millis"].(time.Time); ok {
				deletedAt := t.UTC()
				message.DeletedAt = &deletedAt
			}
		}
		return message
	}

	return &AvroCustomFieldValue{
		EntityID:   getString(record, "entity_id"),
		FieldID:    getString(record, "field_id"),
		ChangeType: getString(record, "change_type"),
		OldKind:    getString(record, "old_kind"),
		OldItems:   getStrings(record, "old_items"),
		NewKind:    getString(record, "new_kind"),
		NewItems:   getStrings(record, "new_items"),
		ChangedBy:  getString(record, "changed_by"),
		ChangedAt:  getTime(record, "changed_at"),
	}
}

func stringsToNative(values []string) []any {
	native := make([]any, len(values))
	for i, value := range values {
		native[i] = value
	}
	return native
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func getBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func getTime(m map[string]any, key string) time.Time {
	t, _ := m[key].(time.Time)
	return t.UTC()
}

func getStrings(m map[string]any, key string) []string {
	items, _ := m[key].([]any)
	values := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
