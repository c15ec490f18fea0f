package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

type MessageRepository interface {
	CreateMessage(message *models.Message) (*models.Message, error)
	FindMessageByID(id uuid.UUID) (*models.Message, error)
	FindMessagesByConversation(conversationID uuid.UUID, offset, limit int) ([]models.Message, error)
	CountMessagesByConversation(conversationID uuid.UUID) (int64, error)
	MarkConversationMessagesRead(conversationID uuid.UUID, receiverID uint) error
	MarkMessageRead(id uuid.UUID) error
	CountUnreadByReceiver(receiverID uint) (int64, error)
	DeleteMessage(id uuid.UUID) error
	FindLatestInConversation(conversationID uuid.UUID, exclude uuid.UUID) (*models.Message, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func (m *messageRepo) CreateMessage(message *models.Message) (*models.Message, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if err := m.DB.Create(message).Error; err != nil {
		return nil, errors.Wrap(err, "unable to create message")
	}
	return m.FindMessageByID(message.ID)
}

func (m *messageRepo) FindMessageByID(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := m.DB.Preload("Sender").Preload("Receiver").Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch message")
	}
	return &message, nil
}

func (m *messageRepo) FindMessagesByConversation(conversationID uuid.UUID, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.Preload("Sender").Preload("Receiver").
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch messages")
	}
	return messages, nil
}

func (m *messageRepo) CountMessagesByConversation(conversationID uuid.UUID) (int64, error) {
	var count int64
	err := m.DB.Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "unable to count messages")
	}
	return count, nil
}

// MarkConversationMessagesRead flips every unread message addressed to the
// receiver inside the conversation. The read transition is one-way.
func (m *messageRepo) MarkConversationMessagesRead(conversationID uuid.UUID, receiverID uint) error {
	return m.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = ?", conversationID, receiverID, false).
		Update("read", true).Error
}

func (m *messageRepo) MarkMessageRead(id uuid.UUID) error {
	return m.DB.Model(&models.Message{}).
		Where("id = ? AND read = ?", id, false).
		Update("read", true).Error
}

func (m *messageRepo) CountUnreadByReceiver(receiverID uint) (int64, error) {
	var count int64
	err := m.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "unable to count unread messages")
	}
	return count, nil
}

func (m *messageRepo) DeleteMessage(id uuid.UUID) error {
	return m.DB.Delete(&models.Message{}, "id = ?", id).Error
}

// FindLatestInConversation returns the newest message of the conversation,
// skipping exclude. Used to repair a lastMessage pointer after a delete.
func (m *messageRepo) FindLatestInConversation(conversationID uuid.UUID, exclude uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := m.DB.Where("conversation_id = ? AND id <> ?", conversationID, exclude).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch latest message")
	}
	return &message, nil
}
