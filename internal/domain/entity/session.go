package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionState is the typed tag of the booking wizard state machine.
type SessionState string

const (
	StateChooseMode       SessionState = "choose_mode"
	StateChooseLanguage   SessionState = "choose_language"
	StateGreeting         SessionState = "greeting"
	StateAskIdentity      SessionState = "ask_identity"
	StateGetReturningInfo SessionState = "get_returning_info"
	StateGetNewInfo       SessionState = "get_new_info"
	StateMainMenu         SessionState = "main_menu"
	StateAskSymptom       SessionState = "ask_symptom"
	StateSelectDoctor     SessionState = "select_doctor"
	StateWeatherCheck     SessionState = "weather_check"
	StatePayment          SessionState = "payment"
	StateConfirmed        SessionState = "confirmed"
	StateEnded            SessionState = "ended"
)

// Communication modes offered at session start.
const (
	ModeChat  = "chat"
	ModeVoice = "voice"
	ModeIVR   = "ivr"
)

// Languages supported by the assistant.
var SupportedLanguages = []string{"English", "Hindi", "Spanish"}

// Greetings holds the localized greeting shown after language selection.
var Greetings = map[string]string{
	"English": "Hi, how are you doing today?",
	"Hindi":   "नमस्ते, आज आप कैसे हैं?",
	"Spanish": "Hola, ¿cómo estás hoy?",
}

// BookingSession is the transient per-interaction state of the wizard.
// It lives in Redis for the session TTL and is discarded afterwards;
// nothing here is persisted beyond the confirmation artifact.
type BookingSession struct {
	ID       string       `json:"id"`
	State    SessionState `json:"state"`
	Mode     string       `json:"mode,omitempty"`
	Language string       `json:"language,omitempty"`

	PatientID   string `json:"patient_id,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	NewPatient  bool   `json:"new_patient,omitempty"`

	Specialty  string `json:"specialty,omitempty"`
	DoctorID   string `json:"doctor_id,omitempty"`
	DoctorName string `json:"doctor_name,omitempty"`
	SlotID     int    `json:"slot_id,omitempty"`
	SlotDate   string `json:"slot_date,omitempty"` // Format: YYYY-MM-DD
	SlotTime   string `json:"slot_time,omitempty"` // Format: HH:MM

	WeatherCity        string  `json:"weather_city,omitempty"`
	WeatherDescription string  `json:"weather_description,omitempty"`
	WeatherTemp        float64 `json:"weather_temp,omitempty"`
	RiskLabel          string  `json:"risk_label,omitempty"`
	RiskScore          int     `json:"risk_score,omitempty"`

	PaymentMode string          `json:"payment_mode,omitempty"`
	TokenFee    decimal.Decimal `json:"token_fee"`
	Paid        bool            `json:"paid,omitempty"`

	RescheduleOffered bool       `json:"reschedule_offered,omitempty"`
	Rescheduled       bool       `json:"rescheduled,omitempty"`
	TravelVoucher     bool       `json:"travel_voucher,omitempty"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasBookedSlot reports whether the session carries a confirmed slot.
func (s *BookingSession) HasBookedSlot() bool {
	return s.Paid && s.SlotID != 0
}

// ValidMode reports whether mode is one of the offered channels.
func ValidMode(mode string) bool {
	return mode == ModeChat || mode == ModeVoice || mode == ModeIVR
}

// ValidLanguage reports whether lang is offered by the assistant.
func ValidLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
