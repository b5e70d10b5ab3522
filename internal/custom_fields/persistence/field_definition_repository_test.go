package persistence_test

import (
	"context"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/persistence"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/pubsub"
	"prospectar-server/internal/infra/sql"
	"prospectar-server/internal/infra/utils"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FieldDefinitionRepository", func() {
	var (
		ctx    context.Context
		broker *pubsub.MemoryBroker
		repo   *persistence.SimpleFieldDefinitionRepository
	)

	BeforeEach(func() {
		ctx = context.Background()
		broker = pubsub.NewMemoryBroker()

		orm, err := sql.NewMemoryORM(utils.GenerateUUID())
		Expect(err).NotTo(HaveOccurred())

		repo, err = persistence.NewFieldDefinitionRepository(pubsub.NewMemoryPublisherFactoryWithBroker(broker), orm)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("Create", func() {
		It("stores every attribute of the definition", func() {
			field := buildField("tenant-1", "Source", domain.FieldTypeSingleSelect, "web", "ads")
			field.Required = true
			field.Visibility.Tabs[domain.TabUTM] = false
			field.Visibility.ShownInSummary = true
			field.Rules = []domain.ValidationRule{{Type: domain.RuleMaxLength, Value: "10"}}

			Expect(repo.Create(ctx, field)).To(Succeed())

			stored, err := repo.GetByID(ctx, field.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.TenantID).To(Equal(shareddomain.ID("tenant-1")))
			Expect(stored.Name).To(Equal(shareddomain.Name("Source")))
			Expect(stored.Type).To(Equal(domain.FieldTypeSingleSelect))
			Expect(stored.Options).To(Equal([]string{"web", "ads"}))
			Expect(stored.Required).To(BeTrue())
			Expect(stored.Visibility.ShownInSummary).To(BeTrue())
			Expect(stored.Visibility.Tabs).To(HaveKeyWithValue(domain.TabUTM, false))
			Expect(stored.Rules).To(ConsistOf(domain.ValidationRule{Type: domain.RuleMaxLength, Value: "10"}))
			Expect(stored.IsDeleted()).To(BeFalse())
		})

		It("announces the definition on the definitions topic", func() {
			field := buildField("tenant-1", "Notes", domain.FieldTypeText)

			Expect(repo.Create(ctx, field)).To(Succeed())

			messages := broker.Messages(usecases.DefinitionsTopic)
			Expect(messages).To(HaveLen(1))
			Expect(messages[0].Key).To(Equal(pubsub.Key(field.ID)))
		})
	})

	Context("GetByID", func() {
		It("returns ErrFieldNotFound for an unknown id", func() {
			_, err := repo.GetByID(ctx, "missing")
			Expect(err).To(MatchError(usecases.ErrFieldNotFound))
		})
	})

	Context("Update", func() {
		It("replaces the stored attributes", func() {
			field := buildField("tenant-1", "Source", domain.FieldTypeSingleSelect, "web")
			Expect(repo.Create(ctx, field)).To(Succeed())

			options := []string{"web", "referral"}
			updated, err := domain.FieldDefinitionPatch{Options: &options}.Apply(field)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.Update(ctx, updated)).To(Succeed())

			stored, err := repo.GetByID(ctx, field.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Options).To(Equal([]string{"web", "referral"}))
			Expect(stored.Version).To(Equal(field.Version + 1))
			Expect(broker.Messages(usecases.DefinitionsTopic)).To(HaveLen(2))
		})

		It("returns ErrFieldNotFound when the definition was never stored", func() {
			field := buildField("tenant-1", "Ghost", domain.FieldTypeText)

			err := repo.Update(ctx, field)
			Expect(err).To(MatchError(usecases.ErrFieldNotFound))
			Expect(broker.Messages(usecases.DefinitionsTopic)).To(BeEmpty())
		})
	})

	Context("FindAllByTenant", func() {
		It("returns the live definitions of the tenant in creation order", func() {
			first := buildField("tenant-1", "First", domain.FieldTypeText)
			second := buildField("tenant-1", "Second", domain.FieldTypeText)
			second.CreatedAt = first.CreatedAt.Add(time.Second)
			other := buildField("tenant-2", "Other", domain.FieldTypeText)
			deleted := buildField("tenant-1", "Deleted", domain.FieldTypeText)

			for _, field := range []domain.FieldDefinition{second, first, other, deleted} {
				Expect(repo.Create(ctx, field)).To(Succeed())
			}
			deleted.SoftDelete()
			Expect(repo.Update(ctx, deleted)).To(Succeed())

			fields, err := repo.FindAllByTenant(ctx, "tenant-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(fields).To(HaveLen(2))
			Expect(fields[0].ID).To(Equal(first.ID))
			Expect(fields[1].ID).To(Equal(second.ID))
		})

		It("keeps soft deleted definitions readable by id", func() {
			field := buildField("tenant-1", "Legacy", domain.FieldTypeText)
			Expect(repo.Create(ctx, field)).To(Succeed())
			field.SoftDelete()
			Expect(repo.Update(ctx, field)).To(Succeed())

			stored, err := repo.GetByID(ctx, field.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsDeleted()).To(BeTrue())
		})
	})
})
