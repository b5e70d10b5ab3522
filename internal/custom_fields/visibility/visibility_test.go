package visibility_test

import (
	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/visibility"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newField(name string, settings domain.Visibility) domain.FieldDefinition {
	field, err := domain.NewFieldDefinitionBuilder().
		WithName(name).
		WithType(domain.FieldTypeText).
		WithVisibility(settings).
		Build()
	Expect(err).NotTo(HaveOccurred())
	return field
}

var _ = Describe("Visibility resolver", func() {
	Context("IsVisible", func() {
		When("the field has no tab settings", func() {
			It("should be visible in every tab", func() {
				field := newField("Company", domain.Visibility{Tabs: map[domain.Tab]bool{}})

				for _, tab := range domain.KnownTabs {
					Expect(visibility.IsVisible(field, tab)).To(BeTrue())
				}
				Expect(visibility.IsVisible(field, domain.TabUTM)).To(BeTrue())
			})
		})

		When("a tab is explicitly hidden", func() {
			It("should only hide that tab", func() {
				field := newField("Campaign", domain.Visibility{Tabs: map[domain.Tab]bool{domain.TabBasic: false, domain.TabUTM: true}})

				Expect(visibility.IsVisible(field, domain.TabBasic)).To(BeFalse())
				Expect(visibility.IsVisible(field, domain.TabUTM)).To(BeTrue())
				Expect(visibility.IsVisible(field, domain.TabDocs)).To(BeTrue())
			})
		})

		When("the tab is not one of the known tabs", func() {
			It("should default to visible", func() {
				field := newField("Company", domain.Visibility{Tabs: map[domain.Tab]bool{domain.TabBasic: false}})

				Expect(visibility.IsVisible(field, domain.Tab("billing"))).To(BeTrue())
			})
		})
	})

	Context("VisibleFields", func() {
		It("should filter and keep the original order", func() {
			first := newField("First", domain.Visibility{})
			hidden := newField("Hidden", domain.Visibility{Tabs: map[domain.Tab]bool{domain.TabCommercial: false}})
			last := newField("Last", domain.Visibility{Tabs: map[domain.Tab]bool{domain.TabCommercial: true}})

			result := visibility.VisibleFields([]domain.FieldDefinition{first, hidden, last}, domain.TabCommercial)

			Expect(result).To(HaveLen(2))
			Expect(result[0].Name).To(BeEquivalentTo("First"))
			Expect(result[1].Name).To(BeEquivalentTo("Last"))
		})
	})

	Context("SummaryFields", func() {
		It("should keep only fields shown in the summary", func() {
			shown := newField("Shown", domain.Visibility{ShownInSummary: true})
			notShown := newField("NotShown", domain.Visibility{})

			result := visibility.SummaryFields([]domain.FieldDefinition{notShown, shown})

			Expect(result).To(HaveLen(1))
			Expect(visibility.InSummary(result[0])).To(BeTrue())
		})
	})
})
