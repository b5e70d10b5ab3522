package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/httpapi"
	"prospectar-server/internal/custom_fields/httpapi/client"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/httpserver"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
	mockusecases "prospectar-server/test/unit/doubles/custom_fields/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Client", func() {
	var (
		ctx         context.Context
		ctrl        *gomock.Controller
		definitions *mockusecases.MockFieldDefinitionService
		values      *mockusecases.MockFieldValueService
		audit       *mockusecases.MockAuditService
		server      *httptest.Server
		remote      *client.Client
		source      domain.FieldDefinition
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		definitions = mockusecases.NewMockFieldDefinitionService(ctrl)
		values = mockusecases.NewMockFieldValueService(ctrl)
		audit = mockusecases.NewMockAuditService(ctrl)

		api := httpserver.NewServer(httpserver.ServerConfig{},
			httpapi.NewCustomFieldController(definitions),
			httpapi.NewCustomFieldValueController(values, audit),
		)
		server = httptest.NewServer(api.Handler())
		remote = client.New(client.Config{BaseURL: server.URL, UserID: "cli-user"})

		source = domain.FieldDefinition{
			ID:         "field-1",
			Version:    2,
			TenantID:   "tenant-1",
			Name:       "Source",
			Type:       domain.FieldTypeSingleSelect,
			Options:    []string{"web", "ads"},
			Required:   true,
			Visibility: domain.Visibility{ShownInSummary: true, Tabs: map[domain.Tab]bool{domain.TabUTM: false}},
			Rules:      []domain.ValidationRule{{Type: domain.RuleMaxLength, Value: "3"}},
			CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			UpdatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	})

	AfterEach(func() {
		server.Close()
		ctrl.Finish()
	})

	Context("definitions", func() {
		It("lists the definitions of a tenant", func() {
			definitions.EXPECT().List(gomock.Any(), shareddomain.ID("tenant-1")).Return([]domain.FieldDefinition{source}, nil)

			fields, err := remote.List(ctx, "tenant-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(fields).To(HaveLen(1))
			Expect(fields[0].ID).To(Equal(source.ID))
			Expect(fields[0].Options).To(Equal(source.Options))
			Expect(fields[0].Required).To(BeTrue())
			Expect(fields[0].Visibility.ShownInSummary).To(BeTrue())
			Expect(fields[0].Visibility.Tabs).To(HaveKeyWithValue(domain.TabUTM, false))
			Expect(fields[0].Rules).To(Equal(source.Rules))
			Expect(fields[0].CreatedAt.Equal(source.CreatedAt)).To(BeTrue())
		})

		It("sends the new field attributes", func() {
			visibility := domain.Visibility{Tabs: map[domain.Tab]bool{domain.TabDocs: false}}
			definitions.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, spec domain.FieldDefinitionSpec) (domain.FieldDefinition, error) {
					Expect(spec.TenantID).To(Equal(shareddomain.ID("tenant-1")))
					Expect(spec.Name).To(Equal("Source"))
					Expect(spec.Visibility.Tabs).To(HaveKeyWithValue(domain.TabDocs, false))
					return source, nil
				})

			field, err := remote.Create(ctx, domain.FieldDefinitionSpec{
				TenantID:   "tenant-1",
				Name:       "Source",
				Type:       domain.FieldTypeSingleSelect,
				Options:    []string{"web", "ads"},
				Visibility: &visibility,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(field.ID).To(Equal(source.ID))
		})

		It("turns a 422 into per-field validation errors", func() {
			definitions.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				Return(domain.FieldDefinition{}, domain.ValidationErrors{domain.NewValidationError("options", domain.ErrOptionsRequired)})

			_, err := remote.Create(ctx, domain.FieldDefinitionSpec{TenantID: "tenant-1", Name: "Source", Type: domain.FieldTypeSingleSelect})

			var validationErrs domain.ValidationErrors
			Expect(errors.As(err, &validationErrs)).To(BeTrue())
			Expect(validationErrs.ByField()).To(HaveKey(shareddomain.ID("options")))
			Expect(domain.IsRetryable(err)).To(BeFalse())
		})

		It("turns a 404 into a not found error", func() {
			definitions.EXPECT().
				Delete(gomock.Any(), shareddomain.ID("gone")).
				Return(domain.NotFoundError{Resource: "custom field", ID: "gone"})

			err := remote.Delete(ctx, "gone")

			var notFound domain.NotFoundError
			Expect(errors.As(err, &notFound)).To(BeTrue())
			Expect(notFound.ID).To(Equal(shareddomain.ID("gone")))
		})

		It("sends only the patched attributes", func() {
			name := "Lead source"
			definitions.EXPECT().
				Update(gomock.Any(), shareddomain.ID("field-1"), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ shareddomain.ID, patch domain.FieldDefinitionPatch) (domain.FieldDefinition, error) {
					Expect(patch.Name).To(HaveValue(Equal(name)))
					Expect(patch.Options).To(BeNil())
					Expect(patch.Visibility).To(BeNil())
					return source, nil
				})

			_, err := remote.Update(ctx, "field-1", domain.FieldDefinitionPatch{Name: &name})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("values", func() {
		It("reads the values of an entity", func() {
			values.EXPECT().
				GetForEntity(gomock.Any(), shareddomain.ID("contact-1")).
				Return(map[shareddomain.ID]domain.Value{
					"source":   domain.SingleValue("web"),
					"segments": domain.SetValue("smb", "enterprise"),
				}, nil)

			result, err := remote.GetForEntity(ctx, "contact-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))
			Expect(result["source"].Equal(domain.SingleValue("web"))).To(BeTrue())
			Expect(result["segments"].Equal(domain.SetValue("enterprise", "smb"))).To(BeTrue())
		})

		It("sends the batch with the configured user", func() {
			values.EXPECT().
				SetMany(gomock.Any(), shareddomain.ID("contact-1"), gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ shareddomain.ID, pairs []domain.FieldValuePair) error {
					Expect(shareddomain.ActorFromContext(ctx)).To(Equal(shareddomain.Actor("cli-user")))
					Expect(pairs).To(HaveLen(2))
					Expect(pairs[1].Value.IsNull()).To(BeTrue())
					return nil
				})

			err := remote.SetMany(ctx, "contact-1", []domain.FieldValuePair{
				{FieldID: "source", Value: domain.SingleValue("ads")},
				{FieldID: "notes", Value: domain.NullValue()},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("prefers the actor of the context", func() {
			values.EXPECT().
				SetMany(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ shareddomain.ID, _ []domain.FieldValuePair) error {
					Expect(shareddomain.ActorFromContext(ctx)).To(Equal(shareddomain.Actor("user-42")))
					return nil
				})

			err := remote.SetMany(shareddomain.WithActor(ctx, "user-42"), "contact-1", []domain.FieldValuePair{
				{FieldID: "source", Value: domain.SingleValue("ads")},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("wraps a server failure into a retryable write error", func() {
			values.EXPECT().
				SetMany(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("database is locked"))

			err := remote.SetMany(ctx, "contact-1", []domain.FieldValuePair{
				{FieldID: "source", Value: domain.SingleValue("ads")},
			})

			var writeErr domain.WriteError
			Expect(errors.As(err, &writeErr)).To(BeTrue())
			Expect(writeErr.EntityID).To(Equal(shareddomain.ID("contact-1")))
			Expect(domain.IsRetryable(err)).To(BeTrue())
		})

		It("keeps validation failures of a batch", func() {
			values.EXPECT().
				SetMany(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.ValidationErrors{domain.NewValidationError("source", domain.ErrUnknownOption)})

			err := remote.SetMany(ctx, "contact-1", []domain.FieldValuePair{
				{FieldID: "source", Value: domain.SingleValue("print")},
			})

			var validationErrs domain.ValidationErrors
			Expect(errors.As(err, &validationErrs)).To(BeTrue())
			var writeErr domain.WriteError
			Expect(errors.As(err, &writeErr)).To(BeFalse())
		})

		It("reads a page of the audit log", func() {
			audit.EXPECT().
				List(gomock.Any(), shareddomain.ID("contact-1"), shareddomain.ID("source"), usecases.Pagination{Limit: 10, Offset: 0}).
				Return([]domain.AuditEntry{{
					ID:         "audit-1",
					EntityID:   "contact-1",
					FieldID:    "source",
					NewValue:   domain.SingleValue("web"),
					ChangeType: domain.ChangeTypeCreate,
					ChangedBy:  "user-7",
					CreatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				}}, 1, nil)

			page, err := remote.Audit(ctx, "contact-1", "source", 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(1))
			Expect(page.Entries).To(HaveLen(1))
			Expect(page.Entries[0].OldValue.IsNull()).To(BeTrue())
			Expect(page.Entries[0].ChangedBy).To(Equal(shareddomain.Actor("user-7")))
		})
	})

	Context("transport", func() {
		It("reports an unreachable server as a retryable network error", func() {
			server.Close()

			_, err := remote.GetForEntity(ctx, "contact-1")

			var networkErr domain.NetworkError
			Expect(errors.As(err, &networkErr)).To(BeTrue())
			Expect(domain.IsRetryable(err)).To(BeTrue())
		})
	})
})
