package domain_test

import (
	"context"

	"prospectar-server/internal/shared_kernel/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Actor", func() {
	It("should read the actor stored in the context", func() {
		ctx := domain.WithActor(context.Background(), "ana")
		Expect(domain.ActorFromContext(ctx)).To(Equal(domain.Actor("ana")))
	})

	It("should fall back to the anonymous actor", func() {
		Expect(domain.ActorFromContext(context.Background())).To(Equal(domain.AnonymousActor))
		Expect(domain.ActorFromContext(domain.WithActor(context.Background(), ""))).To(Equal(domain.AnonymousActor))
	})
})

var _ = Describe("ID", func() {
	It("should report the zero id", func() {
		Expect(domain.ID("").IsZero()).To(BeTrue())
		Expect(domain.ID("contact-1").IsZero()).To(BeFalse())
	})
})
