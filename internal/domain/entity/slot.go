package entity

import (
	"strconv"
	"strings"
	"time"
)

// SlotStatus is the lifecycle state of a bookable slot.
// Slots are pre-populated externally, transition once from Open to Filled
// and never transition back.
type SlotStatus string

const (
	SlotStatusOpen   SlotStatus = "Open"
	SlotStatusFilled SlotStatus = "Filled"
)

// Slot is a single bookable (doctor, date, time) unit.
type Slot struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  string     `gorm:"type:varchar(20);not null;index;uniqueIndex:idx_slots_doctor_date_time" json:"doctor_id"`
	SlotDate  time.Time  `gorm:"type:date;not null;uniqueIndex:idx_slots_doctor_date_time" json:"slot_date"`
	StartTime string     `gorm:"type:varchar(5);not null;uniqueIndex:idx_slots_doctor_date_time" json:"start_time"` // Format: HH:MM
	Status    SlotStatus `gorm:"type:varchar(10);not null;default:'Open';index" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Slot) TableName() string {
	return "slots"
}

// IsOpen reports whether the slot can still be booked.
func (s *Slot) IsOpen() bool {
	return s.Status == SlotStatusOpen
}

// StartHour returns the hour component of StartTime ("HH:MM").
func (s *Slot) StartHour() int {
	parts := strings.SplitN(s.StartTime, ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	return h
}
