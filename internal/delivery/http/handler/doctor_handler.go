package handler

import (
	"net/http"

	"ava-assistant/internal/converter"
	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/service"
	"ava-assistant/internal/usecase"
	"ava-assistant/pkg/response"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	bookingUsecase usecase.BookingUsecase
	resolver       *service.SpecialtyResolver
}

func NewDoctorHandler(bookingUsecase usecase.BookingUsecase, resolver *service.SpecialtyResolver) *DoctorHandler {
	return &DoctorHandler{
		bookingUsecase: bookingUsecase,
		resolver:       resolver,
	}
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")

	var (
		doctors []dto.DoctorResponse
		err     error
	)
	if specialty == "" {
		list, listErr := h.bookingUsecase.Doctors(r.Context())
		doctors, err = converter.DoctorsToResponses(list), listErr
	} else {
		list, listErr := h.bookingUsecase.DoctorsBySpecialty(r.Context(), specialty)
		doctors, err = converter.DoctorsToResponses(list), listErr
	}

	if err != nil {
		switch err {
		case usecase.ErrNoProviderForSpecialty:
			response.NotFound(w, "No doctor available for this specialty")
		default:
			response.InternalServerError(w, "Failed to get doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	})
}

func (h *DoctorHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slots, err := h.bookingUsecase.OpenSlotsByDoctor(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get slots")
		}
		return
	}

	responses := converter.SlotsToResponses(slots)
	response.Success(w, http.StatusOK, "Slots retrieved successfully", dto.SlotListResponse{
		Slots: responses,
		Total: len(responses),
	})
}

func (h *DoctorHandler) ResolveSpecialty(w http.ResponseWriter, r *http.Request) {
	symptom := r.URL.Query().Get("symptom")
	if symptom == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'symptom' is required", nil)
		return
	}

	specialty, err := h.resolver.Resolve(symptom)
	if err != nil {
		response.NotFound(w, "No specialty mapped for this symptom")
		return
	}

	response.Success(w, http.StatusOK, "Specialty resolved successfully", dto.ResolveSpecialtyResponse{
		Symptom:   symptom,
		Specialty: specialty,
	})
}
