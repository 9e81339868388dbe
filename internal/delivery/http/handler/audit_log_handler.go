package handler

import (
	"errors"
	"net/http"
	"strconv"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/usecase"
	"provider-directory/pkg/response"
	"provider-directory/pkg/validator"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// List handles GET /audit-logs?entity=&entityId=&actor=&limit=
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.AuditLogQuery{
		Entity:   q.Get("entity"),
		EntityID: q.Get("entityId"),
		Actor:    q.Get("actor"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationError(w, validator.FieldErrors{"limit": "El límite debe ser un número"})
			return
		}
		query.Limit = limit
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	logs, err := h.auditLogUsecase.List(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Error al obtener el historial de cambios")
		return
	}

	response.Success(w, http.StatusOK, "OK", logs)
}

// GetByID handles GET /audit-logs/{id}
func (h *AuditLogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID de auditoría inválido", nil)
		return
	}

	entry, err := h.auditLogUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, "Registro de auditoría no encontrado")
			return
		}
		response.InternalServerError(w, "Error al obtener el registro de auditoría")
		return
	}

	response.Success(w, http.StatusOK, "OK", entry)
}
