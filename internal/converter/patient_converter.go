package converter

import (
	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		PatientID:               patient.PatientID,
		FirstName:               patient.FirstName,
		LastName:                patient.LastName,
		Gender:                  patient.Gender,
		MissedAppointments:      patient.MissedAppointments,
		RiskCategory:            string(patient.RiskCategory),
		MissedAppointmentReason: patient.MissedAppointmentReason,
		TravelingFrom:           patient.TravelingFrom,
		CreatedAt:               patient.CreatedAt,
	}

	if patient.DateOfBirth != nil {
		response.DateOfBirth = patient.DateOfBirth.Format("2006-01-02")
	}
	if patient.LastAppointmentDate != nil {
		response.LastAppointmentDate = patient.LastAppointmentDate.Format("2006-01-02")
	}

	return response
}
