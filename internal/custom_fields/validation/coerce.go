package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"prospectar-server/internal/custom_fields/domain"
)

// CoerceOnRead normalizes a stored raw value into the shape field.Type expects.
// Values written under a previous type are converted (a scalar becomes a
// singleton set, a set keeps its first member). Members that are no longer
// among the options pass through unchanged.
func CoerceOnRead(field domain.FieldDefinition, raw any) domain.Value {
	switch field.Type {
	case domain.FieldTypeMultiSelect:
		return coerceToSet(raw)
	default:
		return coerceToSingle(raw)
	}
}

func coerceToSet(raw any) domain.Value {
	items, isNull := flatten(raw)
	if isNull {
		return domain.NullValue()
	}
	return domain.SetValue(items...)
}

func coerceToSingle(raw any) domain.Value {
	if s, ok := raw.(string); ok {
		return domain.SingleValue(s)
	}
	items, isNull := flatten(raw)
	if isNull || len(items) == 0 {
		return domain.NullValue()
	}
	return domain.SingleValue(items[0])
}

// flatten turns the supported raw encodings into a list of strings.
func flatten(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case domain.Value:
		if v.IsNull() {
			return nil, true
		}
		return flatten(v.Raw())
	case string:
		return flattenString(v)
	case []string:
		return v, false
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			items = append(items, toString(item))
		}
		return items, false
	case json.RawMessage:
		return flattenJSON(v)
	case []byte:
		return flattenJSON(v)
	default:
		return []string{toString(v)}, false
	}
}

func flattenString(s string) ([]string, bool) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		var items []any
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			return flatten(items)
		}
	}
	if s == "" {
		return []string{}, false
	}
	return []string{s}, false
}

func flattenJSON(data []byte) ([]string, bool) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return flattenString(string(data))
	}
	return flatten(decoded)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
