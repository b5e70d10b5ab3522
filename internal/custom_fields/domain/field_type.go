package domain

import "fmt"

type FieldType string

const (
	FieldTypeText         FieldType = "text"
	FieldTypeSingleSelect FieldType = "single_select"
	FieldTypeMultiSelect  FieldType = "multi_select"
)

func ParseFieldType(value string) (FieldType, error) {
	switch FieldType(value) {
	case FieldTypeText, FieldTypeSingleSelect, FieldTypeMultiSelect:
		return FieldType(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, value)
	}
}

func (t FieldType) IsSelect() bool {
	return t == FieldTypeSingleSelect || t == FieldTypeMultiSelect
}

func (t FieldType) String() string {
	return string(t)
}
