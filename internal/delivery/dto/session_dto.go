package dto

// Event types accepted by the session dispatch endpoint.
const (
	EventSelectMode     = "select_mode"
	EventSelectLanguage = "select_language"
	EventBack           = "back"
	EventContinue       = "continue"
	EventIdentity       = "identity"
	EventReturningInfo  = "returning_info"
	EventNewInfo        = "new_info"
	EventMenuSelect     = "menu_select"
	EventSymptom        = "symptom"
	EventSelectSlot     = "select_slot"
	EventPay            = "pay"
	EventReschedule     = "reschedule"
	EventDone           = "done"
)

// Main menu choices.
const (
	MenuBookAppointment = "book_appointment"
	MenuExit            = "exit"
)

// SessionEventRequest is one wizard interaction. Type selects the event;
// the remaining fields are read per event type and ignored otherwise.
type SessionEventRequest struct {
	Type string `json:"type" validate:"required"`

	// select_mode
	Mode string `json:"mode,omitempty"`

	// select_language
	Language string `json:"language,omitempty"`

	// identity
	Returning *bool `json:"returning,omitempty"`

	// returning_info
	Name      string `json:"name,omitempty"`
	PatientID string `json:"patient_id,omitempty"`

	// new_info
	Registration *RegisterPatientRequest `json:"registration,omitempty"`

	// menu_select
	Choice string `json:"choice,omitempty"`

	// symptom
	Symptom string `json:"symptom,omitempty"`

	// select_slot / reschedule
	SlotID int `json:"slot_id,omitempty"`

	// pay
	PaymentMode string `json:"payment_mode,omitempty"`
	Paid        bool   `json:"paid,omitempty"`
}

// SessionView is what the client renders after every dispatch: the current
// state, a prompt, selectable options and any inline warning. Lookup
// failures surface here as Warning while the state re-displays.
type SessionView struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Mode      string `json:"mode,omitempty"`
	Language  string `json:"language,omitempty"`

	Prompt  string   `json:"prompt"`
	Warning string   `json:"warning,omitempty"`
	Options []string `json:"options,omitempty"`

	Patient           *PatientResponse `json:"patient,omitempty"`
	Doctors           []DoctorResponse `json:"doctors,omitempty"`
	Slots             []SlotResponse   `json:"slots,omitempty"`
	Risk              *RiskAdvisory    `json:"risk,omitempty"`
	Booking           *BookingSummary  `json:"booking,omitempty"`
	RescheduleOptions []SlotResponse   `json:"reschedule_options,omitempty"`
	TravelVoucher     bool             `json:"travel_voucher,omitempty"`
}
