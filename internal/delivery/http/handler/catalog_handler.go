package handler

import (
	"encoding/json"
	"net/http"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/usecase"
	"provider-directory/pkg/response"
	"provider-directory/pkg/validator"
)

// CatalogHandler serves /specialties, /insurances and /procedures.
type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.catalogUsecase.ListSpecialties(r.Context())
	if err != nil {
		response.InternalServerError(w, "Error al obtener las especialidades")
		return
	}

	response.Success(w, http.StatusOK, "OK", specialties)
}

func (h *CatalogHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if !h.decode(w, r, &req) {
		return
	}

	specialty, err := h.catalogUsecase.CreateSpecialty(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyDuration:
			response.ValidationError(w, validator.FieldErrors{"time": "La duración debe expresarse en minutos completos"})
		default:
			response.InternalServerError(w, "Error al crear la especialidad")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Especialidad creada correctamente", specialty)
}

func (h *CatalogHandler) GetInsurances(w http.ResponseWriter, r *http.Request) {
	insurances, err := h.catalogUsecase.ListInsurances(r.Context())
	if err != nil {
		response.InternalServerError(w, "Error al obtener los seguros")
		return
	}

	response.Success(w, http.StatusOK, "OK", insurances)
}

func (h *CatalogHandler) CreateInsurance(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInsuranceRequest
	if !h.decode(w, r, &req) {
		return
	}

	insurance, err := h.catalogUsecase.CreateInsurance(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Error al crear el seguro")
		return
	}

	response.Success(w, http.StatusCreated, "Seguro creado correctamente", insurance)
}

func (h *CatalogHandler) GetProcedures(w http.ResponseWriter, r *http.Request) {
	procedures, err := h.catalogUsecase.ListProcedures(r.Context())
	if err != nil {
		response.InternalServerError(w, "Error al obtener los procedimientos")
		return
	}

	response.Success(w, http.StatusOK, "OK", procedures)
}

func (h *CatalogHandler) CreateProcedure(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProcedureRequest
	if !h.decode(w, r, &req) {
		return
	}

	procedure, err := h.catalogUsecase.CreateProcedure(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Error al crear el procedimiento")
		return
	}

	response.Success(w, http.StatusCreated, "Procedimiento creado correctamente", procedure)
}

// decode reads and validates the body, writing the error response itself
// when it returns false.
func (h *CatalogHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido", nil)
		return false
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}

	return true
}
