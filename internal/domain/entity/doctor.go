package entity

// Doctor is immutable reference data loaded at session start.
// Specialty must match the resolver's output domain for bookings to succeed.
type Doctor struct {
	DoctorID   string `gorm:"column:doctor_id;type:varchar(20);primaryKey" json:"doctor_id"`
	DoctorName string `gorm:"type:varchar(100);not null" json:"doctor_name"`
	Specialty  string `gorm:"type:varchar(100);not null;index" json:"specialty"`

	// Relationships
	Slots []Slot `gorm:"foreignKey:DoctorID" json:"slots,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
