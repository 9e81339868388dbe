package handler

import (
	"encoding/json"
	"net/http"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/usecase"
	"provider-directory/pkg/response"
	"provider-directory/pkg/validator"

	"github.com/gorilla/mux"
)

type BranchHandler struct {
	branchUsecase usecase.BranchUsecase
	validator     *validator.CustomValidator
}

func NewBranchHandler(branchUsecase usecase.BranchUsecase, validator *validator.CustomValidator) *BranchHandler {
	return &BranchHandler{
		branchUsecase: branchUsecase,
		validator:     validator,
	}
}

// GetAll handles GET /branches, optionally filtered by ?providerId=
func (h *BranchHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchUsecase.GetAll(r.Context(), r.URL.Query().Get("providerId"))
	if err != nil {
		response.InternalServerError(w, "Error al obtener las sucursales")
		return
	}

	response.Success(w, http.StatusOK, "OK", branches)
}

// Create handles POST /branches
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	branch, err := h.branchUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrBranchProviderNotFound:
			response.NotFound(w, "No se encontró el prestador solicitado")
		default:
			response.InternalServerError(w, "Error al crear la sucursal")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Sucursal creada correctamente", branch)
}

// Update handles PUT /branches/{id}
func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	branch, err := h.branchUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrBranchNotFound:
			response.NotFound(w, "No se encontró la sucursal solicitada")
		default:
			response.InternalServerError(w, "Error al actualizar la sucursal")
		}
		return
	}

	response.Success(w, http.StatusOK, "Sucursal actualizada correctamente", branch)
}
