package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/httpapi"
	"prospectar-server/internal/infra/httpserver"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
	mockusecases "prospectar-server/test/unit/doubles/custom_fields/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("CustomFieldController", func() {
	var (
		ctrl        *gomock.Controller
		mockService *mockusecases.MockFieldDefinitionService
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
		source      domain.FieldDefinition
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockService = mockusecases.NewMockFieldDefinitionService(ctrl)
		router = http.NewServeMux()
		httpapi.NewCustomFieldController(mockService).AddRoutes(router)
		recorder = httptest.NewRecorder()

		source = domain.FieldDefinition{
			ID:         "field-1",
			Version:    1,
			TenantID:   "tenant-1",
			Name:       "Source",
			Type:       domain.FieldTypeSingleSelect,
			Options:    []string{"web", "ads"},
			Required:   true,
			Visibility: domain.Visibility{Tabs: map[domain.Tab]bool{domain.TabUTM: false}},
			CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			UpdatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Context("listCustomFields", func() {
		It("returns the definitions of the tenant", func() {
			mockService.EXPECT().
				List(gomock.Any(), shareddomain.ID("tenant-1")).
				Return([]domain.FieldDefinition{source}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/custom-fields?tenant_id=tenant-1", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var response struct {
				Fields []map[string]any `json:"fields"`
				Total  int              `json:"total"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Total).To(Equal(1))
			Expect(response.Fields[0]).To(HaveKeyWithValue("id", "field-1"))
			Expect(response.Fields[0]).To(HaveKeyWithValue("type", "single_select"))
			Expect(response.Fields[0]).To(HaveKeyWithValue("created_at", "2026-01-02T03:04:05.000Z"))
			Expect(response.Fields[0]["visibility"]).To(HaveKeyWithValue("tabs", HaveKeyWithValue("utm", false)))
		})

		It("requires a tenant", func() {
			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/custom-fields", nil))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("hides internal errors", func() {
			mockService.EXPECT().
				List(gomock.Any(), gomock.Any()).
				Return(nil, errors.New("connection refused"))

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/custom-fields?tenant_id=tenant-1", nil))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Body.String()).NotTo(ContainSubstring("connection refused"))
		})
	})

	Context("createCustomField", func() {
		It("creates the definition from the request", func() {
			mockService.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, spec domain.FieldDefinitionSpec) (domain.FieldDefinition, error) {
					Expect(spec.TenantID).To(Equal(shareddomain.ID("tenant-1")))
					Expect(spec.Type).To(Equal(domain.FieldTypeSingleSelect))
					Expect(spec.Options).To(Equal([]string{"web", "ads"}))
					Expect(spec.Required).To(BeTrue())
					Expect(spec.Visibility).NotTo(BeNil())
					Expect(spec.Visibility.Tabs).To(HaveKeyWithValue(domain.TabUTM, false))
					return source, nil
				})

			body := `{"tenant_id":"tenant-1","name":"Source","type":"single_select","options":["web","ads"],"required":true,"visibility":{"tabs":{"utm":false}}}`
			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/custom-fields", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(recorder.Body.String()).To(ContainSubstring(`"id":"field-1"`))
		})

		It("reports validation failures per field", func() {
			mockService.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				Return(domain.FieldDefinition{}, domain.ValidationErrors{
					domain.NewValidationError("name", domain.ErrNameRequired),
					domain.NewValidationError("options", domain.ErrOptionsRequired),
				})

			body := `{"tenant_id":"tenant-1","name":"","type":"single_select"}`
			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/custom-fields", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
			var response httpserver.ErrorResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Fields).To(HaveKeyWithValue("name", domain.ErrNameRequired.Error()))
			Expect(response.Fields).To(HaveKeyWithValue("options", domain.ErrOptionsRequired.Error()))
		})

		It("rejects a malformed body", func() {
			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/custom-fields", strings.NewReader("{")))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("getCustomField", func() {
		It("returns 404 for a missing definition", func() {
			mockService.EXPECT().
				Get(gomock.Any(), shareddomain.ID("missing")).
				Return(domain.FieldDefinition{}, domain.NotFoundError{Resource: "custom field", ID: "missing"})

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/custom-fields/missing", nil))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("updateCustomField", func() {
		It("passes only the provided attributes", func() {
			updated := source
			updated.Name = "Lead source"
			mockService.EXPECT().
				Update(gomock.Any(), shareddomain.ID("field-1"), gomock.Any()).
				DoAndReturn(func(_ any, _ shareddomain.ID, patch domain.FieldDefinitionPatch) (domain.FieldDefinition, error) {
					Expect(patch.Name).To(HaveValue(Equal("Lead source")))
					Expect(patch.Type).To(BeNil())
					Expect(patch.Options).To(BeNil())
					return updated, nil
				})

			router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/v1/custom-fields/field-1", strings.NewReader(`{"name":"Lead source"}`)))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"name":"Lead source"`))
		})
	})

	Context("deleteCustomField", func() {
		It("replies without content", func() {
			mockService.EXPECT().Delete(gomock.Any(), shareddomain.ID("field-1")).Return(nil)

			router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/v1/custom-fields/field-1", nil))

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})
	})
})
