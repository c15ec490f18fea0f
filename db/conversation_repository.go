package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

type ConversationRepository interface {
	FindConversationsByUser(userID uint) ([]models.Conversation, error)
	FindConversationByID(id uuid.UUID) (*models.Conversation, error)
	FindConversationByPair(a, b uint) (*models.Conversation, error)
	GetOrCreateConversation(a, b uint) (*models.Conversation, bool, error)
	RecordNewMessage(conversationID, messageID uuid.UUID, incrementUnread bool) error
	SetUnreadCount(conversationID uuid.UUID, count int) error
	ResetUnreadCount(conversationID uuid.UUID) error
	FindConversationsByLastMessage(messageID uuid.UUID) ([]models.Conversation, error)
	SetLastMessage(conversationID uuid.UUID, messageID *uuid.UUID) error
}

type conversationRepo struct {
	DB *gorm.DB
}

func NewConversationRepo(db *GormDB) ConversationRepository {
	return &conversationRepo{db.DB}
}

func (c *conversationRepo) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("ParticipantOne").Preload("ParticipantOne.Role").
		Preload("ParticipantTwo").Preload("ParticipantTwo.Role").
		Preload("LastMessage").Preload("LastMessage.Sender").Preload("LastMessage.Receiver")
}

func (c *conversationRepo) FindConversationsByUser(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := c.preload(c.DB).
		Where("participant_one_id = ? OR participant_two_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch conversations")
	}
	return conversations, nil
}

func (c *conversationRepo) FindConversationByID(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := c.preload(c.DB).Where("id = ?", id).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch conversation")
	}
	return &conversation, nil
}

// FindConversationByPair looks up the thread for an unordered pair. The
// pair is normalized before the query, so both orderings hit the same row.
func (c *conversationRepo) FindConversationByPair(a, b uint) (*models.Conversation, error) {
	low, high := models.NormalizePair(a, b)
	var conversation models.Conversation
	err := c.preload(c.DB).
		Where("participant_one_id = ? AND participant_two_id = ?", low, high).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch conversation")
	}
	return &conversation, nil
}

// GetOrCreateConversation returns the thread for the pair, creating it if
// absent. The unique index over the normalized pair makes concurrent
// creation safe: a loser of the race gets a duplicate-key error and
// re-reads the winner's row.
func (c *conversationRepo) GetOrCreateConversation(a, b uint) (*models.Conversation, bool, error) {
	existing, err := c.FindConversationByPair(a, b)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	low, high := models.NormalizePair(a, b)
	conversation := &models.Conversation{
		ID:               uuid.New(),
		ParticipantOneID: low,
		ParticipantTwoID: high,
		UnreadCount:      0,
	}
	if err := c.DB.Create(conversation).Error; err != nil {
		if isDuplicateKeyError(err) {
			winner, ferr := c.FindConversationByPair(a, b)
			if ferr != nil {
				return nil, false, ferr
			}
			return winner, false, nil
		}
		return nil, false, errors.Wrap(err, "unable to create conversation")
	}

	created, err := c.FindConversationByID(conversation.ID)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// RecordNewMessage moves the lastMessage pointer and, for sends addressed
// to the other participant's unread view, bumps the counter with an atomic
// expression rather than read-modify-write.
func (c *conversationRepo) RecordNewMessage(conversationID, messageID uuid.UUID, incrementUnread bool) error {
	updates := map[string]interface{}{
		"last_message_id": messageID,
		"updated_at":      time.Now(),
	}
	if incrementUnread {
		updates["unread_count"] = gorm.Expr("unread_count + ?", 1)
	}
	return c.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Updates(updates).Error
}

func (c *conversationRepo) SetUnreadCount(conversationID uuid.UUID, count int) error {
	return c.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("unread_count", count).Error
}

func (c *conversationRepo) ResetUnreadCount(conversationID uuid.UUID) error {
	return c.DB.Model(&models.Conversation{}).
		Where("id = ? AND unread_count > 0", conversationID).
		Update("unread_count", 0).Error
}

func (c *conversationRepo) FindConversationsByLastMessage(messageID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := c.DB.Where("last_message_id = ?", messageID).Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch conversations by last message")
	}
	return conversations, nil
}

func (c *conversationRepo) SetLastMessage(conversationID uuid.UUID, messageID *uuid.UUID) error {
	return c.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_id", messageID).Error
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// The postgres driver surfaces 23505 through the error text when the
	// translator is not enabled.
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "23505")
}
