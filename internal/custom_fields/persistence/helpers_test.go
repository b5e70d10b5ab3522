package persistence_test

import (
	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	. "github.com/onsi/gomega"
)

func buildField(tenantID shareddomain.ID, name string, fieldType domain.FieldType, options ...string) domain.FieldDefinition {
	field, err := domain.NewFieldDefinitionBuilder().
		WithTenantID(tenantID).
		WithName(name).
		WithType(fieldType).
		WithOptions(options...).
		Build()
	Expect(err).NotTo(HaveOccurred())
	return field
}
