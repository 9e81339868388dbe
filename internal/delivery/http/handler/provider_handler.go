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

type ProviderHandler struct {
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
}

func NewProviderHandler(providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator) *ProviderHandler {
	return &ProviderHandler{
		providerUsecase: providerUsecase,
		validator:       validator,
	}
}

// GetAll handles GET /providers
func (h *ProviderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	providers, err := h.providerUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Error al obtener los prestadores")
		return
	}

	response.Success(w, http.StatusOK, "OK", providers)
}

// GetByID handles GET /providers/{id}
func (h *ProviderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	provider, err := h.providerUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "No se encontró el prestador solicitado")
		default:
			response.InternalServerError(w, "Error al obtener el prestador")
		}
		return
	}

	response.Success(w, http.StatusOK, "OK", provider)
}

// Create handles POST /providers
func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.providerUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Error al crear el prestador")
		return
	}

	response.Success(w, http.StatusCreated, "Prestador creado correctamente", provider)
}

// Update handles PUT /providers/{id}. The body is the full record; an
// omitted id is taken from the path.
func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.ServiceProvider
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido", nil)
		return
	}
	if req.ID == "" {
		req.ID = id
	}
	if req.ID != id {
		response.Error(w, http.StatusBadRequest, "El ID del cuerpo no coincide con la ruta", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.providerUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "No se encontró el prestador solicitado")
		default:
			response.InternalServerError(w, "Error al actualizar el proveedor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Proveedor actualizado correctamente", provider)
}
