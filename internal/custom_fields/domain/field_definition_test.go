package domain_test

import (
	"errors"

	"prospectar-server/internal/custom_fields/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FieldDefinition", func() {
	Context("Build", func() {
		When("building a text field", func() {
			It("should assign an id and default visibility", func() {
				field, err := domain.NewFieldDefinitionBuilder().
					WithTenantID("tenant-1").
					WithName("Company").
					WithType(domain.FieldTypeText).
					Build()

				Expect(err).NotTo(HaveOccurred())
				Expect(field.ID).NotTo(BeEmpty())
				Expect(field.Version).To(BeEquivalentTo(1))
				Expect(field.Options).To(BeNil())
				Expect(field.Required).To(BeFalse())
				Expect(field.Visibility.Tabs).To(BeEmpty())
				Expect(field.CreatedAt).NotTo(BeZero())
			})
		})

		When("the name is empty", func() {
			It("should return a validation error for the name", func() {
				_, err := domain.NewFieldDefinitionBuilder().
					WithType(domain.FieldTypeText).
					Build()

				var validationErr domain.ValidationError
				Expect(errors.As(err, &validationErr)).To(BeTrue())
				Expect(validationErr.FieldID).To(BeEquivalentTo("name"))
				Expect(err).To(MatchError(domain.ErrNameRequired))
			})
		})

		When("a select field has no options", func() {
			It("should be rejected", func() {
				_, err := domain.NewFieldDefinitionBuilder().
					WithName("Stage").
					WithType(domain.FieldTypeSingleSelect).
					Build()

				Expect(err).To(MatchError(domain.ErrOptionsRequired))
			})
		})

		When("options are duplicated", func() {
			It("should be rejected", func() {
				_, err := domain.NewFieldDefinitionBuilder().
					WithName("Stage").
					WithType(domain.FieldTypeMultiSelect).
					WithOptions("a", "b", "a").
					Build()

				Expect(err).To(MatchError(domain.ErrDuplicateOption))
			})
		})

		When("the type is unknown", func() {
			It("should be rejected", func() {
				_, err := domain.NewFieldDefinitionBuilder().
					WithName("Stage").
					WithType("number").
					Build()

				Expect(err).To(MatchError(domain.ErrUnknownFieldType))
			})
		})

		When("a rule has an invalid pattern", func() {
			It("should be rejected", func() {
				_, err := domain.NewFieldDefinitionBuilder().
					WithName("Code").
					WithType(domain.FieldTypeText).
					WithRules(domain.ValidationRule{Type: domain.RulePattern, Value: "(["}).
					Build()

				Expect(err).To(MatchError(domain.ErrInvalidRule))
			})
		})

		When("several attributes are wrong", func() {
			It("should report every failure", func() {
				_, err := domain.NewFieldDefinitionBuilder().
					WithType(domain.FieldTypeSingleSelect).
					Build()

				var errs domain.ValidationErrors
				Expect(errors.As(err, &errs)).To(BeTrue())
				Expect(errs).To(HaveLen(2))
			})
		})
	})

	Context("Patch", func() {
		var field domain.FieldDefinition

		BeforeEach(func() {
			var err error
			field, err = domain.NewFieldDefinitionBuilder().
				WithTenantID("tenant-1").
				WithName("Interests").
				WithType(domain.FieldTypeMultiSelect).
				WithOptions("a", "b", "c").
				WithTabVisibility(domain.TabUTM, false).
				Build()
			Expect(err).NotTo(HaveOccurred())
		})

		When("changing the type away from a select type", func() {
			It("should clear the options", func() {
				text := domain.FieldTypeText
				patched, err := domain.FieldDefinitionPatch{Type: &text}.Apply(field)

				Expect(err).NotTo(HaveOccurred())
				Expect(patched.Type).To(Equal(domain.FieldTypeText))
				Expect(patched.Options).To(BeNil())
				Expect(patched.Version).To(Equal(field.Version + 1))
			})
		})

		When("emptying the options of a select field", func() {
			It("should be rejected", func() {
				empty := []string{}
				_, err := domain.FieldDefinitionPatch{Options: &empty}.Apply(field)

				Expect(err).To(MatchError(domain.ErrOptionsRequired))
			})
		})

		When("renaming to an empty name", func() {
			It("should be rejected", func() {
				name := ""
				_, err := domain.FieldDefinitionPatch{Name: &name}.Apply(field)

				Expect(err).To(MatchError(domain.ErrNameRequired))
			})
		})

		When("patching the visibility", func() {
			It("should not alias the original map", func() {
				visibility := domain.Visibility{Tabs: map[domain.Tab]bool{domain.TabDocs: false}}
				patched, err := domain.FieldDefinitionPatch{Visibility: &visibility}.Apply(field)
				Expect(err).NotTo(HaveOccurred())

				visibility.Tabs[domain.TabBasic] = false
				Expect(patched.Visibility.Tabs).To(Equal(map[domain.Tab]bool{domain.TabDocs: false}))
				Expect(field.Visibility.Tabs).To(Equal(map[domain.Tab]bool{domain.TabUTM: false}))
			})
		})
	})

	Context("SoftDelete", func() {
		It("should mark the definition as deleted", func() {
			field, _ := domain.NewFieldDefinitionBuilder().
				WithName("Company").
				WithType(domain.FieldTypeText).
				Build()

			field.SoftDelete()

			Expect(field.IsDeleted()).To(BeTrue())
			Expect(field.DeletedAt).NotTo(BeNil())
		})
	})
})
