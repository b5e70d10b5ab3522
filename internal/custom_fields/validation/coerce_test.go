package validation_test

import (
	"encoding/json"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/validation"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CoerceOnRead", func() {
	Context("multi_select", func() {
		var field domain.FieldDefinition

		BeforeEach(func() {
			field = buildField(domain.FieldTypeMultiSelect, false, "a", "b", "c")
		})

		It("should round trip a written set", func() {
			written := domain.SetValue("a", "b")
			Expect(validation.Validate(field, written)).To(Succeed())

			stored, err := json.Marshal(written)
			Expect(err).NotTo(HaveOccurred())

			read := validation.CoerceOnRead(field, json.RawMessage(stored))
			Expect(read.Equal(domain.SetValue("a", "b"))).To(BeTrue())
		})

		It("should turn a stored scalar into a singleton set", func() {
			read := validation.CoerceOnRead(field, "a")
			Expect(read.Equal(domain.SetValue("a"))).To(BeTrue())
		})

		It("should decode a json array stored as a string", func() {
			read := validation.CoerceOnRead(field, `["b","c"]`)
			Expect(read.Equal(domain.SetValue("b", "c"))).To(BeTrue())
		})

		It("should keep options that were removed from the definition", func() {
			read := validation.CoerceOnRead(field, []any{"a", "retired"})
			Expect(read.Equal(domain.SetValue("a", "retired"))).To(BeTrue())
		})

		It("should keep null as null", func() {
			Expect(validation.CoerceOnRead(field, nil).IsNull()).To(BeTrue())
		})
	})

	Context("single_select and text", func() {
		It("should keep the first member of a stored set", func() {
			field := buildField(domain.FieldTypeSingleSelect, false, "a", "b")

			read := validation.CoerceOnRead(field, []string{"b", "a"})
			Expect(read.Equal(domain.SingleValue("b"))).To(BeTrue())
		})

		It("should turn an empty stored set into null", func() {
			field := buildField(domain.FieldTypeSingleSelect, false, "a", "b")

			Expect(validation.CoerceOnRead(field, []string{}).IsNull()).To(BeTrue())
		})

		It("should keep text verbatim, including brackets", func() {
			field := buildField(domain.FieldTypeText, false)

			read := validation.CoerceOnRead(field, "[draft]")
			Expect(read.Equal(domain.SingleValue("[draft]"))).To(BeTrue())
		})

		It("should stringify scalars decoded from json", func() {
			field := buildField(domain.FieldTypeText, false)

			read := validation.CoerceOnRead(field, json.RawMessage(`42`))
			Expect(read.Equal(domain.SingleValue("42"))).To(BeTrue())
		})

		It("should accept an already typed value", func() {
			field := buildField(domain.FieldTypeText, false)

			read := validation.CoerceOnRead(field, domain.SingleValue("acme"))
			Expect(read.Equal(domain.SingleValue("acme"))).To(BeTrue())
		})
	})
})
