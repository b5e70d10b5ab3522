package utils

import (
	"github.com/google/uuid"
)

func GenerateUUID() string {
	return uuid.NewString()
}

func IsUUID(value string) bool {
	return uuid.Validate(value) == nil
}
