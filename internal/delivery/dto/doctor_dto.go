package dto

// Response DTOs

type DoctorResponse struct {
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Specialty  string `json:"specialty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type SlotResponse struct {
	ID         int    `json:"id"`
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name,omitempty"`
	SlotDate   string `json:"slot_date"`  // Format: YYYY-MM-DD
	StartTime  string `json:"start_time"` // Format: HH:MM
	Status     string `json:"status"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

type ResolveSpecialtyResponse struct {
	Symptom   string `json:"symptom"`
	Specialty string `json:"specialty"`
}
