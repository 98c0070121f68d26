package entity

const (
	StatusComing = "coming"
	StatusCame   = "came"
	StatusNoShow = "noshow"
)

// IsValidStatus reports whether s is one of the three guest statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusComing, StatusCame, StatusNoShow:
		return true
	}
	return false
}

type Guest struct {
	GuestID       string `gorm:"primaryKey"`
	AppointmentID string `gorm:"not null;uniqueIndex:idx_guests_appointment_user"` // Owned by the Appointment service
	UserID        string `gorm:"not null;uniqueIndex:idx_guests_appointment_user"` // Owned by the User service
	GuestStatus   string `gorm:"not null;default:coming"`
	CreatedAt     int64  `gorm:"not null"`
	UpdatedAt     int64  `gorm:"not null"`
}
