package converter

import (
	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}
	return &dto.DoctorResponse{
		DoctorID:   doctor.DoctorID,
		DoctorName: doctor.DoctorName,
		Specialty:  doctor.Specialty,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = dto.DoctorResponse{
			DoctorID:   doctor.DoctorID,
			DoctorName: doctor.DoctorName,
			Specialty:  doctor.Specialty,
		}
	}
	return responses
}

// SlotToResponse converts a Slot entity to SlotResponse DTO
func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	response := &dto.SlotResponse{
		ID:        slot.ID,
		DoctorID:  slot.DoctorID,
		SlotDate:  slot.SlotDate.Format("2006-01-02"),
		StartTime: slot.StartTime,
		Status:    string(slot.Status),
	}

	// Include doctor name if the relation was preloaded
	if slot.Doctor.DoctorID != "" {
		response.DoctorName = slot.Doctor.DoctorName
	}

	return response
}

// SlotsToResponses converts a slice of Slot entities to DTOs
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i := range slots {
		responses[i] = *SlotToResponse(&slots[i])
	}
	return responses
}
