package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

type ValueKind uint8

const (
	ValueKindNull ValueKind = iota
	ValueKindSingle
	ValueKindSet
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindSingle:
		return "single"
	case ValueKindSet:
		return "set"
	default:
		return "null"
	}
}

// Value is the content of one custom attribute: null, a single string
// (text and single_select) or an unordered set of strings (multi_select).
// The zero Value is null.
type Value struct {
	kind   ValueKind
	single string
	set    []string
}

func NullValue() Value {
	return Value{}
}

func SingleValue(s string) Value {
	return Value{kind: ValueKindSingle, single: s}
}

// SetValue drops duplicates and keeps first-seen order.
func SetValue(items ...string) Value {
	set := make([]string, 0, len(items))
	for _, item := range items {
		if !slices.Contains(set, item) {
			set = append(set, item)
		}
	}
	return Value{kind: ValueKindSet, set: set}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == ValueKindNull
}

// IsEmpty reports whether the value carries no selection: null, "" or an empty set.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case ValueKindSingle:
		return v.single == ""
	case ValueKindSet:
		return len(v.set) == 0
	default:
		return true
	}
}

func (v Value) Single() (string, bool) {
	return v.single, v.kind == ValueKindSingle
}

func (v Value) Set() ([]string, bool) {
	if v.kind != ValueKindSet {
		return nil, false
	}
	return slices.Clone(v.set), true
}

func (v Value) Contains(item string) bool {
	switch v.kind {
	case ValueKindSingle:
		return v.single == item
	case ValueKindSet:
		return slices.Contains(v.set, item)
	default:
		return false
	}
}

// Equal compares sets without regard to order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueKindSingle:
		return v.single == other.single
	case ValueKindSet:
		if len(v.set) != len(other.set) {
			return false
		}
		for _, item := range v.set {
			if !slices.Contains(other.set, item) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Raw returns the value as plain Go data: nil, string or []string.
func (v Value) Raw() any {
	switch v.kind {
	case ValueKindSingle:
		return v.single
	case ValueKindSet:
		return slices.Clone(v.set)
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case ValueKindSingle:
		return v.single
	case ValueKindSet:
		return fmt.Sprintf("%v", v.set)
	default:
		return "<null>"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*v = NullValue()
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = SingleValue(s)
	case trimmed[0] == '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decoding value set: %w", err)
		}
		*v = SetValue(items...)
	default:
		return fmt.Errorf("%w: unsupported json value %s", ErrInvalidValue, string(trimmed))
	}
	return nil
}

// FieldValuePair is one element of a batch write.
type FieldValuePair struct {
	FieldID shareddomain.ID
	Value   Value
}
