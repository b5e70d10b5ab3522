package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/httpapi"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/httpserver"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
	mockusecases "prospectar-server/test/unit/doubles/custom_fields/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("CustomFieldValueController", func() {
	var (
		ctrl       *gomock.Controller
		mockValues *mockusecases.MockFieldValueService
		mockAudit  *mockusecases.MockAuditService
		controller *httpapi.CustomFieldValueController
		router     *http.ServeMux
		recorder   *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockValues = mockusecases.NewMockFieldValueService(ctrl)
		mockAudit = mockusecases.NewMockAuditService(ctrl)
		controller = httpapi.NewCustomFieldValueController(mockValues, mockAudit)
		router = http.NewServeMux()
		controller.AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Context("getValues", func() {
		It("returns the values keyed by field", func() {
			mockValues.EXPECT().
				GetForEntity(gomock.Any(), shareddomain.ID("contact-1")).
				Return(map[shareddomain.ID]domain.Value{
					"source":   domain.SingleValue("web"),
					"segments": domain.SetValue("smb"),
				}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/contacts/contact-1/custom-fields", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"entity_id":"contact-1","values":{"source":"web","segments":["smb"]}}`))
		})
	})

	Context("setValues", func() {
		It("stores the batch in request order", func() {
			mockValues.EXPECT().
				SetMany(gomock.Any(), shareddomain.ID("contact-1"), gomock.Any()).
				DoAndReturn(func(_ any, _ shareddomain.ID, pairs []domain.FieldValuePair) error {
					Expect(pairs).To(HaveLen(3))
					Expect(pairs[0].FieldID).To(Equal(shareddomain.ID("source")))
					Expect(pairs[0].Value.Equal(domain.SingleValue("web"))).To(BeTrue())
					Expect(pairs[1].Value.Equal(domain.SetValue("smb", "enterprise"))).To(BeTrue())
					Expect(pairs[2].Value.IsNull()).To(BeTrue())
					return nil
				})

			body := `{"values":[{"field_id":"source","value":"web"},{"field_id":"segments","value":["smb","enterprise"]},{"field_id":"notes","value":null}]}`
			router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/v1/contacts/contact-1/custom-fields", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})

		It("records the caller as the actor", func() {
			mockValues.EXPECT().
				SetMany(gomock.Any(), shareddomain.ID("contact-1"), gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ shareddomain.ID, _ []domain.FieldValuePair) error {
					Expect(shareddomain.ActorFromContext(ctx)).To(Equal(shareddomain.Actor("user-9")))
					return nil
				})

			handler := httpserver.NewServer(httpserver.ServerConfig{}, controller).Handler()
			request := httptest.NewRequest("PUT", "/v1/contacts/contact-1/custom-fields", strings.NewReader(`{"values":[]}`))
			request.Header.Set("X-User-ID", "user-9")
			handler.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})

		It("reports validation failures with 422", func() {
			mockValues.EXPECT().
				SetMany(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.ValidationErrors{domain.NewValidationError("source", domain.ErrUnknownOption)})

			body := `{"values":[{"field_id":"source","value":"print"}]}`
			router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/v1/contacts/contact-1/custom-fields", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
			var response httpserver.ErrorResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Fields).To(HaveKeyWithValue("source", domain.ErrUnknownOption.Error()))
		})

		It("reports a vanished field with 404", func() {
			mockValues.EXPECT().
				SetMany(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.NotFoundError{Resource: "custom field", ID: "gone"})

			body := `{"values":[{"field_id":"gone","value":"x"}]}`
			router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/v1/contacts/contact-1/custom-fields", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("reports a failed write with 500", func() {
			mockValues.EXPECT().
				SetMany(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.WriteError{EntityID: "contact-1", Err: errors.New("disk full")})

			body := `{"values":[{"field_id":"notes","value":"x"}]}`
			router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/v1/contacts/contact-1/custom-fields", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})

		It("rejects values that are neither strings nor lists", func() {
			body := `{"values":[{"field_id":"notes","value":42}]}`
			router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/v1/contacts/contact-1/custom-fields", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("listAudit", func() {
		It("paginates the entries of the entity filtered by field", func() {
			entries := []domain.AuditEntry{{
				ID:         "audit-1",
				EntityID:   "contact-1",
				FieldID:    "source",
				OldValue:   domain.NullValue(),
				NewValue:   domain.SingleValue("web"),
				ChangeType: domain.ChangeTypeCreate,
				ChangedBy:  "user-7",
				CreatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			}}
			mockAudit.EXPECT().
				List(gomock.Any(), shareddomain.ID("contact-1"), shareddomain.ID("source"), usecases.Pagination{Limit: 5, Offset: 5}).
				Return(entries, 6, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/contacts/contact-1/custom-fields/audit?field_id=source&page=2&limit=5", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var response httpserver.PaginatedResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Pagination.Total).To(Equal(6))
			Expect(response.Pagination.TotalPages).To(Equal(2))
			Expect(response.Data).To(HaveLen(1))
			Expect(response.Data.([]any)[0]).To(HaveKeyWithValue("change_type", "create"))
			Expect(response.Data.([]any)[0]).To(HaveKeyWithValue("old_value", BeNil()))
		})
	})
})
