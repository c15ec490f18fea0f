package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a message thread between exactly two users. The pair is
// stored in normalized order (lower user id first) and carries a unique
// index, so at most one conversation can exist per unordered pair even
// under concurrent creation.
type Conversation struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantOneID uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"-"`
	ParticipantOne   User       `gorm:"foreignKey:ParticipantOneID" json:"-"`
	ParticipantTwoID uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"-"`
	ParticipantTwo   User       `gorm:"foreignKey:ParticipantTwoID" json:"-"`
	LastMessageID    *uuid.UUID `gorm:"type:uuid" json:"last_message_id"`
	LastMessage      *Message   `gorm:"foreignKey:LastMessageID" json:"last_message"`
	UnreadCount      int        `gorm:"not null;default:0" json:"unread_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NormalizePair orders a participant pair so (a,b) and (b,a) map to the
// same conversation row.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(userID uint) bool {
	return c.ParticipantOneID == userID || c.ParticipantTwoID == userID
}

// OtherParticipant returns the participant that is not userID. The caller
// must already be a participant.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.ParticipantOneID == userID {
		return c.ParticipantTwoID
	}
	return c.ParticipantOneID
}

// ConversationResponse is the API shape, with the participant pair
// flattened into summaries.
type ConversationResponse struct {
	ID           uuid.UUID     `json:"id"`
	Participants []UserSummary `json:"participants"`
	LastMessage  *Message      `json:"last_message"`
	UnreadCount  int           `json:"unread_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (c *Conversation) Response() *ConversationResponse {
	one := c.ParticipantOne
	two := c.ParticipantTwo
	return &ConversationResponse{
		ID:           c.ID,
		Participants: []UserSummary{one.Summary(), two.Summary()},
		LastMessage:  c.LastMessage,
		UnreadCount:  c.UnreadCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type CreateConversationRequest struct {
	ParticipantID uint `json:"participant_id" binding:"required"`
}

type UpdateConversationRequest struct {
	UnreadCount *int `json:"unread_count" binding:"required"`
}
