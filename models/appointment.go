package models

import "time"

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment books a customer with a gig's professional.
type Appointment struct {
	Model
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"user"`
	ProfessionalID uint      `gorm:"not null;index" json:"professional_id"`
	Professional   User      `gorm:"foreignKey:ProfessionalID" json:"professional"`
	GigID          uint      `gorm:"not null;index" json:"gig_id"`
	Gig            Gig       `gorm:"foreignKey:GigID" json:"gig"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Notes          string    `json:"notes"`
	MeetingID      string    `json:"meeting_id"`
	Status         string    `gorm:"default:pending" json:"status"`
}

func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type CreateAppointmentRequest struct {
	GigID uint      `json:"gig_id" binding:"required"`
	Date  time.Time `json:"date" binding:"required"`
	Time  string    `json:"time" binding:"required"`
	Notes string    `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

type ProvideMeetingRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	MeetingID     string `json:"meeting_id" binding:"required"`
}
