package dto

import "time"

// Request DTOs

type RegisterPatientRequest struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Gender        string `json:"gender" validate:"omitempty,oneof=M F O"`
	DateOfBirth   string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Symptom       string `json:"symptom" validate:"omitempty,max=500"`
	TravelingFrom string `json:"traveling_from" validate:"omitempty,max=100"`
}

type VerifyPatientRequest struct {
	Name      string `json:"name" validate:"required"`
	PatientID string `json:"patient_id" validate:"required"`
}

// Response DTOs

type PatientResponse struct {
	PatientID               string    `json:"patient_id"`
	FirstName               string    `json:"first_name"`
	LastName                string    `json:"last_name"`
	Gender                  string    `json:"gender,omitempty"`
	DateOfBirth             string    `json:"date_of_birth,omitempty"`
	MissedAppointments      int       `json:"missed_appointments"`
	RiskCategory            string    `json:"risk_category"`
	LastAppointmentDate     string    `json:"last_appointment_date,omitempty"`
	MissedAppointmentReason string    `json:"missed_appointment_reason,omitempty"`
	TravelingFrom           string    `json:"traveling_from,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}
