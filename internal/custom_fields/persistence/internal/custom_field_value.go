package internal

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"prospectar-server/internal/custom_fields/domain"
)

type CustomFieldValue struct {
	EntityID  string    `json:"entity_id" gorm:"primaryKey"`
	FieldID   string    `json:"field_id" gorm:"primaryKey;index"`
	Value     RawValue  `json:"value" gorm:"type:jsonb"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CustomFieldValue) TableName() string {
	return "custom_field_values"
}

// StoredValue is a value row joined with the current type of its field.
type StoredValue struct {
	FieldID string
	Type    string
	Value   RawValue
}

// RawValue keeps the stored JSON untouched until it is coerced on read.
type RawValue []byte

func FromValue(value domain.Value) (RawValue, error) {
	if value.IsNull() {
		return nil, nil
	}
	return json.Marshal(value)
}

func (v RawValue) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return string(v), nil
}

func (v *RawValue) Scan(value any) error {
	switch raw := value.(type) {
	case nil:
		*v = nil
	case []byte:
		*v = append(RawValue(nil), raw...)
	case string:
		*v = RawValue(raw)
	default:
		return scanJSON(value, v)
	}
	return nil
}

// ToDomain decodes the value as written, without coercion.
func (v RawValue) ToDomain() (domain.Value, error) {
	var value domain.Value
	if len(v) == 0 {
		return value, nil
	}
	if err := json.Unmarshal(v, &value); err != nil {
		return domain.NullValue(), err
	}
	return value, nil
}
