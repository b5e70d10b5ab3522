package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/httpapi/internal"
	"prospectar-server/internal/infra/httpserver"
)

const validationErrMessage = "validation failed"

func replyWithServiceError(w http.ResponseWriter, err error, operation, errMessage string) {
	if fields, ok := internal.FieldErrors(err); ok {
		httpserver.ReplyWithFieldErrors(w, http.StatusUnprocessableEntity, validationErrMessage, fields)
		return
	}

	var notFound domain.NotFoundError
	if errors.As(err, &notFound) {
		httpserver.ReplyWithError(w, http.StatusNotFound, notFound.Error())
		return
	}

	slog.Error(operation, slog.String("error", err.Error()))
	httpserver.ReplyWithError(w, http.StatusInternalServerError, errMessage)
}
