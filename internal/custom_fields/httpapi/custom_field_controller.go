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
	listCustomFieldsErrMessage  = "failed to list custom fields"
	getCustomFieldErrMessage    = "failed to get custom field"
	createCustomFieldErrMessage = "failed to create custom field"
	updateCustomFieldErrMessage = "failed to update custom field"
	deleteCustomFieldErrMessage = "failed to delete custom field"
)

func NewCustomFieldController(service usecases.FieldDefinitionService) *CustomFieldController {
	return &CustomFieldController{
		service: service,
	}
}

var _ httpserver.Controller = &CustomFieldController{}

type CustomFieldController struct {
	service usecases.FieldDefinitionService
}

func (c *CustomFieldController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/custom-fields", c.listCustomFields())
	router.Handle("POST /v1/custom-fields", c.createCustomField())
	router.Handle("GET /v1/custom-fields/{id}", c.getCustomField())
	router.Handle("PUT /v1/custom-fields/{id}", c.updateCustomField())
	router.Handle("DELETE /v1/custom-fields/{id}", c.deleteCustomField())
}

func (c *CustomFieldController) listCustomFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetQueryParam(r, "tenant_id")
		if tenantID == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "tenant_id is required")
			return
		}

		fields, err := c.service.List(r.Context(), shareddomain.ID(tenantID))
		if err != nil {
			replyWithServiceError(w, err, "listing custom fields", listCustomFieldsErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToCustomFieldListResponse(fields))
	}
}

func (c *CustomFieldController) createCustomField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.CustomFieldCreateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding create custom field request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, createCustomFieldErrMessage)
			return
		}

		if body.TenantID == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "tenant_id is required")
			return
		}

		field, err := c.service.Create(r.Context(), body.ToSpec())
		if err != nil {
			replyWithServiceError(w, err, "creating custom field", createCustomFieldErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToCustomFieldResponse(field))
	}
}

func (c *CustomFieldController) getCustomField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		field, err := c.service.Get(r.Context(), shareddomain.ID(id))
		if err != nil {
			replyWithServiceError(w, err, "getting custom field", getCustomFieldErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToCustomFieldResponse(field))
	}
}

func (c *CustomFieldController) updateCustomField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.CustomFieldUpdateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding update custom field request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, updateCustomFieldErrMessage)
			return
		}

		field, err := c.service.Update(r.Context(), shareddomain.ID(id), body.ToPatch())
		if err != nil {
			replyWithServiceError(w, err, "updating custom field", updateCustomFieldErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToCustomFieldResponse(field))
	}
}

func (c *CustomFieldController) deleteCustomField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		err := c.service.Delete(r.Context(), shareddomain.ID(id))
		if err != nil {
			replyWithServiceError(w, err, "deleting custom field", deleteCustomFieldErrMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
