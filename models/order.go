package models

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order links a client to a professional through a gig and carries the
// commissioned job details.
type Order struct {
	Model
	ClientID       uint      `gorm:"not null;index" json:"client_id"`
	Client         User      `gorm:"foreignKey:ClientID" json:"client"`
	ProfessionalID uint      `gorm:"not null;index" json:"professional_id"`
	Professional   User      `gorm:"foreignKey:ProfessionalID" json:"professional"`
	GigID          uint      `gorm:"not null;index" json:"gig_id"`
	Gig            Gig       `gorm:"foreignKey:GigID" json:"gig"`
	ServiceName    string    `json:"service_name" binding:"required"`
	JobDescription string    `json:"job_description" binding:"required"`
	Budget         int       `json:"budget" binding:"required,gt=0"`
	Deadline       time.Time `json:"deadline" binding:"required"`
	Requirements   string    `json:"additional_requirements"`
	PaymentProof   string    `json:"payment_proof" binding:"required"`
	Status         string    `gorm:"default:pending" json:"status"`
	Feedback       string    `json:"feedback"`
	ReviewRating   int       `json:"review_rating"`
	ReviewComment  string    `json:"review_comment"`
	ReviewGivenAt  *time.Time `json:"review_given_at"`
}

type CreateOrderRequest struct {
	GigID          uint      `json:"gig_id" binding:"required"`
	ServiceName    string    `json:"service_name" binding:"required" conform:"trim"`
	JobDescription string    `json:"job_description" binding:"required"`
	Budget         int       `json:"budget" binding:"required,gt=0"`
	Deadline       time.Time `json:"deadline" binding:"required"`
	Requirements   string    `json:"additional_requirements"`
	PaymentProof   string    `json:"payment_proof" binding:"required"`
}

type OrderReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
