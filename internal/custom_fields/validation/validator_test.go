package validation_test

import (
	"errors"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/validation"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func buildField(fieldType domain.FieldType, required bool, options ...string) domain.FieldDefinition {
	field, err := domain.NewFieldDefinitionBuilder().
		WithName(string(fieldType)).
		WithType(fieldType).
		WithOptions(options...).
		WithRequired(required).
		Build()
	Expect(err).NotTo(HaveOccurred())
	return field
}

var _ = Describe("Validate", func() {
	Context("text", func() {
		It("should accept any string or null when optional", func() {
			field := buildField(domain.FieldTypeText, false)

			Expect(validation.Validate(field, domain.SingleValue("anything"))).To(Succeed())
			Expect(validation.Validate(field, domain.SingleValue(""))).To(Succeed())
			Expect(validation.Validate(field, domain.NullValue())).To(Succeed())
		})

		It("should reject null and empty string when required", func() {
			field := buildField(domain.FieldTypeText, true)

			Expect(validation.Validate(field, domain.NullValue())).To(MatchError(domain.ErrRequired))
			Expect(validation.Validate(field, domain.SingleValue(""))).To(MatchError(domain.ErrRequired))
			Expect(validation.Validate(field, domain.SingleValue("x"))).To(Succeed())
		})

		It("should reject a set", func() {
			field := buildField(domain.FieldTypeText, false)

			Expect(validation.Validate(field, domain.SetValue("a"))).To(MatchError(domain.ErrShapeMismatch))
		})
	})

	Context("single_select", func() {
		It("should enforce required-ness", func() {
			field := buildField(domain.FieldTypeSingleSelect, true, "a", "b")

			err := validation.Validate(field, domain.NullValue())
			Expect(err).To(MatchError(domain.ErrRequired))

			var validationErr domain.ValidationError
			Expect(errors.As(err, &validationErr)).To(BeTrue())
			Expect(validationErr.FieldID).To(Equal(field.ID))

			Expect(validation.Validate(field, domain.SingleValue("a"))).To(Succeed())
		})

		It("should reject a value that is not an option", func() {
			field := buildField(domain.FieldTypeSingleSelect, false, "a", "b")

			Expect(validation.Validate(field, domain.SingleValue("z"))).To(MatchError(domain.ErrUnknownOption))
		})
	})

	Context("multi_select", func() {
		It("should treat an empty set as no selection", func() {
			optional := buildField(domain.FieldTypeMultiSelect, false, "a", "b", "c")
			required := buildField(domain.FieldTypeMultiSelect, true, "a", "b", "c")

			Expect(validation.Validate(optional, domain.SetValue())).To(Succeed())
			Expect(validation.Validate(required, domain.SetValue())).To(MatchError(domain.ErrRequired))
			Expect(validation.Validate(required, domain.SetValue("a", "c"))).To(Succeed())
		})

		It("should reject members outside the options", func() {
			field := buildField(domain.FieldTypeMultiSelect, false, "a", "b")

			Expect(validation.Validate(field, domain.SetValue("a", "z"))).To(MatchError(domain.ErrUnknownOption))
		})

		It("should reject a single string", func() {
			field := buildField(domain.FieldTypeMultiSelect, false, "a", "b")

			Expect(validation.Validate(field, domain.SingleValue("a"))).To(MatchError(domain.ErrShapeMismatch))
		})
	})

	Context("rules", func() {
		var field domain.FieldDefinition

		BeforeEach(func() {
			var err error
			field, err = domain.NewFieldDefinitionBuilder().
				WithName("Tax ID").
				WithType(domain.FieldTypeText).
				WithRules(
					domain.ValidationRule{Type: domain.RuleMinLength, Value: "3"},
					domain.ValidationRule{Type: domain.RuleMaxLength, Value: "6"},
					domain.ValidationRule{Type: domain.RulePattern, Value: `^[0-9]+$`, Message: "only digits"},
				).
				Build()
			Expect(err).NotTo(HaveOccurred())
		})

		It("should accept a value that satisfies every rule", func() {
			Expect(validation.Validate(field, domain.SingleValue("12345"))).To(Succeed())
		})

		It("should report the length rules", func() {
			Expect(validation.Validate(field, domain.SingleValue("12"))).To(MatchError(domain.ErrRuleViolation))
			Expect(validation.Validate(field, domain.SingleValue("1234567"))).To(MatchError(domain.ErrRuleViolation))
		})

		It("should use the rule message", func() {
			err := validation.Validate(field, domain.SingleValue("12a4"))
			Expect(err).To(MatchError(ContainSubstring("only digits")))
		})

		It("should not apply rules to an empty value", func() {
			Expect(validation.Validate(field, domain.SingleValue(""))).To(Succeed())
			Expect(validation.Validate(field, domain.NullValue())).To(Succeed())
		})
	})
})

var _ = Describe("ValidateAll", func() {
	It("should aggregate one error per failing field without stopping early", func() {
		stage := buildField(domain.FieldTypeSingleSelect, true, "a", "b")
		tags := buildField(domain.FieldTypeMultiSelect, false, "x")
		notes := buildField(domain.FieldTypeText, false)

		err := validation.ValidateAll(
			[]domain.FieldDefinition{stage, tags, notes},
			[]domain.FieldValuePair{
				{FieldID: stage.ID, Value: domain.NullValue()},
				{FieldID: notes.ID, Value: domain.SingleValue("ok")},
				{FieldID: tags.ID, Value: domain.SetValue("y")},
				{FieldID: "missing", Value: domain.SingleValue("x")},
			},
		)

		var errs domain.ValidationErrors
		Expect(errors.As(err, &errs)).To(BeTrue())
		Expect(errs).To(HaveLen(3))
		byField := errs.ByField()
		Expect(byField).To(HaveKey(stage.ID))
		Expect(byField).To(HaveKey(tags.ID))
		Expect(byField["missing"].Err).To(MatchError(domain.ErrUnknownField))
	})

	It("should return nil when every pair is valid", func() {
		stage := buildField(domain.FieldTypeSingleSelect, true, "a", "b")

		err := validation.ValidateAll(
			[]domain.FieldDefinition{stage},
			[]domain.FieldValuePair{{FieldID: stage.ID, Value: domain.SingleValue("b")}},
		)

		Expect(err).NotTo(HaveOccurred())
	})
})
