package domain_test

import (
	"encoding/json"

	"prospectar-server/internal/custom_fields/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Value", func() {
	It("should treat the zero value as null", func() {
		var value domain.Value
		Expect(value.IsNull()).To(BeTrue())
		Expect(value.IsEmpty()).To(BeTrue())
		Expect(value.Raw()).To(BeNil())
	})

	It("should drop duplicated set members", func() {
		value := domain.SetValue("a", "b", "a")
		items, ok := value.Set()
		Expect(ok).To(BeTrue())
		Expect(items).To(Equal([]string{"a", "b"}))
	})

	It("should compare sets regardless of order", func() {
		Expect(domain.SetValue("a", "b").Equal(domain.SetValue("b", "a"))).To(BeTrue())
		Expect(domain.SetValue("a").Equal(domain.SingleValue("a"))).To(BeFalse())
		Expect(domain.NullValue().Equal(domain.Value{})).To(BeTrue())
	})

	It("should consider an empty string and an empty set as empty", func() {
		Expect(domain.SingleValue("").IsEmpty()).To(BeTrue())
		Expect(domain.SetValue().IsEmpty()).To(BeTrue())
		Expect(domain.SingleValue("x").IsEmpty()).To(BeFalse())
	})

	DescribeTable("json encoding",
		func(value domain.Value, expected string) {
			data, err := json.Marshal(value)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(expected))

			var decoded domain.Value
			Expect(json.Unmarshal(data, &decoded)).To(Succeed())
			Expect(decoded.Equal(value)).To(BeTrue())
		},
		Entry("null", domain.NullValue(), "null"),
		Entry("single", domain.SingleValue("acme"), `"acme"`),
		Entry("set", domain.SetValue("a", "b"), `["a","b"]`),
	)

	It("should reject json values that are not strings or string arrays", func() {
		var decoded domain.Value
		Expect(json.Unmarshal([]byte(`42`), &decoded)).To(MatchError(domain.ErrInvalidValue))
	})
})

var _ = Describe("ValueChange", func() {
	DescribeTable("change type",
		func(oldValue, newValue domain.Value, expected domain.ChangeType) {
			change := domain.ValueChange{EntityID: "contact-1", FieldID: "field-1", OldValue: oldValue, NewValue: newValue}
			entry := change.ToAuditEntry()
			Expect(entry.ChangeType).To(Equal(expected))
			Expect(entry.ID).NotTo(BeEmpty())
		},
		Entry("first value", domain.NullValue(), domain.SingleValue("x"), domain.ChangeTypeCreate),
		Entry("replaced value", domain.SingleValue("x"), domain.SingleValue("y"), domain.ChangeTypeUpdate),
		Entry("cleared value", domain.SetValue("a"), domain.SetValue(), domain.ChangeTypeDelete),
	)

	It("should detect writes that change nothing", func() {
		change := domain.ValueChange{OldValue: domain.SetValue("a", "b"), NewValue: domain.SetValue("b", "a")}
		Expect(change.IsNoop()).To(BeTrue())
	})
})
