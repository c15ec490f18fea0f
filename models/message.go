package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single directed text item inside a conversation. The
// conversation reference is stored explicitly at creation, so scoped
// queries and lastMessage repair never have to reconstruct membership
// from the sender/receiver pair.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID     uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver       User      `gorm:"foreignKey:ReceiverID" json:"receiver"`
	Content        string    `gorm:"not null" json:"content"`
	Read           bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

type SendMessageRequest struct {
	ConversationID *uuid.UUID `json:"conversation_id"`
	ReceiverID     *uint      `json:"receiver_id"`
	Content        string     `json:"content"`
}

// MessagePage is a newest-first page of a conversation's messages.
type MessagePage struct {
	Messages   []Message      `json:"messages"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
