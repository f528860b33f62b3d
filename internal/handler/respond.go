package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/rat-api/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы.
// Текст внутренних ошибок только логируется и клиенту не отдается
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)
	switch code {
	case domain.CodeBadRequest:
		RespondWithError(w, r, http.StatusBadRequest, code, "invalid request")
	case domain.CodeNotFound:
		RespondWithError(w, r, http.StatusNotFound, code, "resource not found")
	case domain.CodeForbidden:
		RespondWithError(w, r, http.StatusForbidden, code, "access denied")
	case domain.CodeUnauthorized:
		RespondWithError(w, r, http.StatusUnauthorized, code, "unauthorized")
	case domain.CodeAlreadyMember:
		RespondWithError(w, r, http.StatusConflict, code, "member is already linked to project")
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		RespondWithError(w, r, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
	}
}
