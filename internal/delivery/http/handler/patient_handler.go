package handler

import (
	"encoding/json"
	"net/http"

	"ava-assistant/internal/converter"
	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/usecase"
	"ava-assistant/pkg/response"
	"ava-assistant/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidBirthDate:
			response.Error(w, http.StatusBadRequest, "Date of birth must be in YYYY-MM-DD format", nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", converter.PatientToResponse(patient))
}

func (h *PatientHandler) VerifyPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Verify(r.Context(), req.Name, req.PatientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientIDNotFound:
			response.NotFound(w, "Patient ID not found")
		case usecase.ErrNameMismatch:
			response.Error(w, http.StatusUnprocessableEntity, "Name does not match patient record", nil)
		default:
			response.InternalServerError(w, "Failed to verify patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient verified successfully", converter.PatientToResponse(patient))
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patient, err := h.patientUsecase.FindByID(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case usecase.ErrPatientIDNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", converter.PatientToResponse(patient))
}
