package httpapi

import (
	"log/slog"
	"net/http"

	"prospectar-server/internal/custom_fields/httpapi/internal"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/httpserver"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

const (
	getValuesErrMessage = "failed to get custom field values"
	setValuesErrMessage = "failed to store custom field values"
	listAuditErrMessage = "failed to list custom field audit"
)

func NewCustomFieldValueController(service usecases.FieldValueService, audit usecases.AuditService) *CustomFieldValueController {
	return &CustomFieldValueController{
		service: service,
		audit:   audit,
	}
}

var _ httpserver.Controller = &CustomFieldValueController{}

type CustomFieldValueController struct {
	service usecases.FieldValueService
	audit   usecases.AuditService
}

func (c *CustomFieldValueController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/contacts/{id}/custom-fields", c.getValues())
	router.Handle("PUT /v1/contacts/{id}/custom-fields", c.setValues())
	router.Handle("GET /v1/contacts/{id}/custom-fields/audit", c.listAudit())
}

func (c *CustomFieldValueController) getValues() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := shareddomain.ID(r.PathValue("id"))

		values, err := c.service.GetForEntity(r.Context(), entityID)
		if err != nil {
			replyWithServiceError(w, err, "getting custom field values", getValuesErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToCustomFieldValuesResponse(entityID, values))
	}
}

func (c *CustomFieldValueController) setValues() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := shareddomain.ID(r.PathValue("id"))

		var body internal.CustomFieldValuesSetRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding set custom field values request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, setValuesErrMessage)
			return
		}

		err = c.service.SetMany(r.Context(), entityID, body.ToPairs())
		if err != nil {
			replyWithServiceError(w, err, "setting custom field values", setValuesErrMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *CustomFieldValueController) listAudit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := shareddomain.ID(r.PathValue("id"))
		fieldID := shareddomain.ID(httpserver.GetQueryParam(r, "field_id"))

		params := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{Limit: params.Limit, Offset: params.Offset()}

		entries, total, err := c.audit.List(r.Context(), entityID, fieldID, pagination)
		if err != nil {
			replyWithServiceError(w, err, "listing custom field audit", listAuditErrMessage)
			return
		}

		responses := make([]internal.AuditEntryResponse, len(entries))
		for i, entry := range entries {
			responses[i] = internal.ToAuditEntryResponse(entry)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, params)
	}
}
