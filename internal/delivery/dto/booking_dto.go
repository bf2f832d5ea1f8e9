package dto

import "github.com/shopspring/decimal"

// BookingSummary is the confirmed appointment as shown to the patient and
// printed on the receipt.
type BookingSummary struct {
	PatientID   string          `json:"patient_id"`
	PatientName string          `json:"patient_name"`
	DoctorID    string          `json:"doctor_id"`
	DoctorName  string          `json:"doctor_name"`
	Specialty   string          `json:"specialty"`
	SlotDate    string          `json:"slot_date"`  // Format: YYYY-MM-DD
	SlotTime    string          `json:"slot_time"`  // Format: HH:MM
	PaymentMode string          `json:"payment_mode"`
	TokenFee    decimal.Decimal `json:"token_fee"`
	ConfirmedAt string          `json:"confirmed_at,omitempty"`
}

// RiskAdvisory is the no-show advisory shown during the weather check.
// It never blocks progression.
type RiskAdvisory struct {
	Label              string  `json:"label"`
	Score              int     `json:"score"`
	WeatherCity        string  `json:"weather_city,omitempty"`
	WeatherDescription string  `json:"weather_description,omitempty"`
	TempCelsius        float64 `json:"temp_celsius,omitempty"`
	WeatherUnavailable bool    `json:"weather_unavailable,omitempty"`
}
