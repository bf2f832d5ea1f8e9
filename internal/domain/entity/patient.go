package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RiskCategory is the patient's historical no-show risk bucket.
// Updated by an external care-management system, not by this service.
type RiskCategory string

const (
	RiskCategoryLow      RiskCategory = "Low"
	RiskCategoryModerate RiskCategory = "Moderate"
	RiskCategoryHigh     RiskCategory = "High"
)

const (
	// PatientIDPrefix is the fixed prefix of every patient identifier.
	PatientIDPrefix = "AVP-"

	// patientIDBase is the first numeric suffix assigned when the
	// directory is empty.
	patientIDBase = 4000
)

// Patient represents a directory record. PatientID is immutable after
// registration; MissedAppointments and RiskCategory are maintained externally.
type Patient struct {
	PatientID               string       `gorm:"column:patient_id;type:varchar(20);primaryKey" json:"patient_id"`
	FirstName               string       `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName                string       `gorm:"type:varchar(100);not null" json:"last_name"`
	Gender                  string       `gorm:"type:char(1)" json:"gender,omitempty"`
	DateOfBirth             *time.Time   `gorm:"type:date" json:"date_of_birth,omitempty"`
	Symptom                 string       `gorm:"type:text" json:"symptom,omitempty"`
	MissedAppointments      int          `gorm:"not null;default:0" json:"missed_appointments"`
	RiskCategory            RiskCategory `gorm:"type:varchar(20);not null;default:'Low'" json:"risk_category"`
	LastAppointmentDate     *time.Time   `gorm:"type:date" json:"last_appointment_date,omitempty"`
	MissedAppointmentReason string       `gorm:"type:text" json:"missed_appointment_reason,omitempty"`
	TravelingFrom           string       `gorm:"type:varchar(100)" json:"traveling_from,omitempty"`
	CreatedAt               time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName returns the display name used in confirmations.
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// HasMissedHistory reports whether the patient has any missed appointments
// on record. Drives the advisory message and the reschedule offer.
func (p *Patient) HasMissedHistory() bool {
	return p.MissedAppointments > 0
}

// MissedForTransport reports whether the recorded missed-appointment reason
// is transportation-related, which qualifies the patient for a travel
// voucher on reschedule.
func (p *Patient) MissedForTransport() bool {
	reason := strings.ToLower(p.MissedAppointmentReason)
	return strings.Contains(reason, "transport") || strings.Contains(reason, "traffic")
}

// ParsePatientID extracts the numeric suffix from an AVP identifier.
func ParsePatientID(id string) (int, error) {
	if !strings.HasPrefix(id, PatientIDPrefix) {
		return 0, fmt.Errorf("invalid patient id %q: missing %s prefix", id, PatientIDPrefix)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, PatientIDPrefix))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid patient id %q: non-numeric suffix", id)
	}
	return n, nil
}

// FormatPatientID builds an AVP identifier from a numeric suffix.
func FormatPatientID(n int) string {
	return fmt.Sprintf("%s%d", PatientIDPrefix, n)
}

// NextPatientID assigns the identifier following the current maximum
// numeric suffix. An empty directory (maxSuffix 0) starts at AVP-4000.
func NextPatientID(maxSuffix int) string {
	if maxSuffix == 0 {
		return FormatPatientID(patientIDBase)
	}
	return FormatPatientID(maxSuffix + 1)
}
