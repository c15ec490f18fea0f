package services

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/db"
	apiError "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
)

const (
	defaultMessagePage  = 1
	defaultMessageLimit = 20
)

// ChatService owns the conversation/message store and the real-time
// mirror. Every operation validates the caller's participation before it
// touches a record; a send persists first and relays only on success.
type ChatService interface {
	ListConversations(callerID uint) ([]*models.ConversationResponse, *apiError.Error)
	GetConversation(conversationID uuid.UUID, callerID uint) (*models.ConversationResponse, *apiError.Error)
	CreateOrGetConversation(callerID, otherUserID uint) (*models.ConversationResponse, bool, *apiError.Error)
	UpdateUnreadCount(conversationID uuid.UUID, callerID uint, count int) (*models.ConversationResponse, *apiError.Error)
	ListMessages(conversationID uuid.UUID, callerID uint, page, limit int) (*models.MessagePage, *apiError.Error)
	SendMessage(callerID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error)
	MarkMessageRead(messageID uuid.UUID, callerID uint) *apiError.Error
	UnreadCount(callerID uint) (int64, *apiError.Error)
	DeleteMessage(messageID uuid.UUID, callerID uint) *apiError.Error
}

type chatService struct {
	Config           *config.Config
	conversationRepo db.ConversationRepository
	messageRepo      db.MessageRepository
	authRepo         db.AuthRepository
	relay            *Relay
	push             PushService
}

func NewChatService(conversationRepo db.ConversationRepository, messageRepo db.MessageRepository,
	authRepo db.AuthRepository, relay *Relay, push PushService, conf *config.Config) ChatService {
	return &chatService{
		Config:           conf,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		authRepo:         authRepo,
		relay:            relay,
		push:             push,
	}
}

// ListConversations returns the caller's threads, most recently updated
// first. The full set is returned; with per-user thread counts this small,
// pagination is a scaling concern, not a correctness one.
func (s *chatService) ListConversations(callerID uint) ([]*models.ConversationResponse, *apiError.Error) {
	conversations, err := s.conversationRepo.FindConversationsByUser(callerID)
	if err != nil {
		log.Printf("ListConversations error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	responses := make([]*models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		responses = append(responses, conversations[i].Response())
	}
	return responses, nil
}

func (s *chatService) GetConversation(conversationID uuid.UUID, callerID uint) (*models.ConversationResponse, *apiError.Error) {
	conversation, apiErr := s.participantConversation(conversationID, callerID)
	if apiErr != nil {
		return nil, apiErr
	}
	return conversation.Response(), nil
}

func (s *chatService) CreateOrGetConversation(callerID, otherUserID uint) (*models.ConversationResponse, bool, *apiError.Error) {
	if otherUserID == callerID {
		return nil, false, apiError.New("cannot start a conversation with yourself", http.StatusBadRequest)
	}

	if _, err := s.authRepo.FindUserByID(otherUserID); err != nil {
		if isNotFound(err) {
			return nil, false, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("CreateOrGetConversation error fetching user: %v", err)
		return nil, false, apiError.ErrInternalServerError
	}

	conversation, created, err := s.conversationRepo.GetOrCreateConversation(callerID, otherUserID)
	if err != nil {
		log.Printf("CreateOrGetConversation error: %v", err)
		return nil, false, apiError.ErrInternalServerError
	}
	return conversation.Response(), created, nil
}

// UpdateUnreadCount sets the caller-supplied counter value. Negative
// values are rejected; the counter is never allowed below zero.
func (s *chatService) UpdateUnreadCount(conversationID uuid.UUID, callerID uint, count int) (*models.ConversationResponse, *apiError.Error) {
	if count < 0 {
		return nil, apiError.New("unread count cannot be negative", http.StatusBadRequest)
	}

	if _, apiErr := s.participantConversation(conversationID, callerID); apiErr != nil {
		return nil, apiErr
	}

	if err := s.conversationRepo.SetUnreadCount(conversationID, count); err != nil {
		log.Printf("UpdateUnreadCount error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	updated, err := s.conversationRepo.FindConversationByID(conversationID)
	if err != nil {
		log.Printf("UpdateUnreadCount refetch error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return updated.Response(), nil
}

// ListMessages returns a newest-first page of the conversation. Viewing is
// marking read: every unread message addressed to the caller is flipped
// and the conversation counter reset before the page is assembled, so the
// returned records reflect the transition.
func (s *chatService) ListMessages(conversationID uuid.UUID, callerID uint, page, limit int) (*models.MessagePage, *apiError.Error) {
	conversation, apiErr := s.participantConversation(conversationID, callerID)
	if apiErr != nil {
		return nil, apiErr
	}

	if page < 1 {
		page = defaultMessagePage
	}
	if limit < 1 {
		limit = defaultMessageLimit
	}

	if err := s.messageRepo.MarkConversationMessagesRead(conversationID, callerID); err != nil {
		log.Printf("ListMessages mark read error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if conversation.UnreadCount > 0 {
		if err := s.conversationRepo.ResetUnreadCount(conversationID); err != nil {
			log.Printf("ListMessages reset unread error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}

	offset := (page - 1) * limit
	messages, err := s.messageRepo.FindMessagesByConversation(conversationID, offset, limit)
	if err != nil {
		log.Printf("ListMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	total, err := s.messageRepo.CountMessagesByConversation(conversationID)
	if err != nil {
		log.Printf("ListMessages count error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &models.MessagePage{
		Messages: messages,
		Pagination: models.PaginationMeta{
			Total: total,
			Pages: pages,
			Page:  page,
			Limit: limit,
		},
	}, nil
}

// SendMessage is the single write path for both the REST and the socket
// surface: resolve the conversation, persist the message, update the
// thread, then mirror to the receiver's live sessions. The relay and the
// push are attempted only after the persist succeeded.
func (s *chatService) SendMessage(callerID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error) {
	content := strings.TrimSpace(request.Content)
	if content == "" {
		return nil, apiError.New("message content cannot be empty", http.StatusBadRequest)
	}
	if (request.ConversationID == nil) == (request.ReceiverID == nil) {
		return nil, apiError.New("either conversation_id or receiver_id is required", http.StatusBadRequest)
	}

	var conversation *models.Conversation
	var receiverID uint

	switch {
	case request.ConversationID != nil:
		found, apiErr := s.participantConversation(*request.ConversationID, callerID)
		if apiErr != nil {
			return nil, apiErr
		}
		conversation = found
		receiverID = found.OtherParticipant(callerID)

	default:
		receiverID = *request.ReceiverID
		if receiverID == callerID {
			return nil, apiError.New("cannot message yourself", http.StatusBadRequest)
		}
		if _, err := s.authRepo.FindUserByID(receiverID); err != nil {
			if isNotFound(err) {
				return nil, apiError.New("user not found", http.StatusNotFound)
			}
			log.Printf("SendMessage error fetching receiver: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		found, _, err := s.conversationRepo.GetOrCreateConversation(callerID, receiverID)
		if err != nil {
			log.Printf("SendMessage error resolving conversation: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		conversation = found
	}

	message, err := s.messageRepo.CreateMessage(&models.Message{
		ConversationID: conversation.ID,
		SenderID:       callerID,
		ReceiverID:     receiverID,
		Content:        content,
		Read:           false,
	})
	if err != nil {
		log.Printf("SendMessage persist error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	// The receiver-targeted path bumps the unread counter; a send into a
	// known conversation leaves it to the view-side reset, matching the
	// original surface.
	incrementUnread := request.ReceiverID != nil
	if err := s.conversationRepo.RecordNewMessage(conversation.ID, message.ID, incrementUnread); err != nil {
		log.Printf("SendMessage conversation update error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if s.relay != nil {
		s.relay.Deliver(receiverID, RelayEvent{
			SenderID:       callerID,
			ReceiverID:     receiverID,
			ConversationID: conversation.ID,
			Content:        content,
		})
	}
	if s.push != nil {
		if err := s.push.NotifyNewMessage(receiverID, message); err != nil {
			log.Printf("SendMessage push notification failed: %v", err)
		}
	}

	return message, nil
}

// MarkMessageRead is idempotent: marking an already-read message is a
// successful no-op.
func (s *chatService) MarkMessageRead(messageID uuid.UUID, callerID uint) *apiError.Error {
	message, err := s.messageRepo.FindMessageByID(messageID)
	if err != nil {
		if isNotFound(err) {
			return apiError.New("message not found", http.StatusNotFound)
		}
		log.Printf("MarkMessageRead error: %v", err)
		return apiError.ErrInternalServerError
	}
	if message.ReceiverID != callerID {
		return apiError.New("not authorized to mark this message as read", http.StatusForbidden)
	}
	if message.Read {
		return nil
	}
	if err := s.messageRepo.MarkMessageRead(messageID); err != nil {
		log.Printf("MarkMessageRead update error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *chatService) UnreadCount(callerID uint) (int64, *apiError.Error) {
	count, err := s.messageRepo.CountUnreadByReceiver(callerID)
	if err != nil {
		log.Printf("UnreadCount error: %v", err)
		return 0, apiError.ErrInternalServerError
	}
	return count, nil
}

// DeleteMessage removes a sender's own message and repairs the lastMessage
// pointer of any conversation that referenced it: the pointer moves to the
// newest remaining message of that conversation, or to nil when none
// remain.
func (s *chatService) DeleteMessage(messageID uuid.UUID, callerID uint) *apiError.Error {
	message, err := s.messageRepo.FindMessageByID(messageID)
	if err != nil {
		if isNotFound(err) {
			return apiError.New("message not found", http.StatusNotFound)
		}
		log.Printf("DeleteMessage error: %v", err)
		return apiError.ErrInternalServerError
	}
	if message.SenderID != callerID {
		return apiError.New("you can only delete your own messages", http.StatusForbidden)
	}

	pointing, err := s.conversationRepo.FindConversationsByLastMessage(messageID)
	if err != nil {
		log.Printf("DeleteMessage lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := s.messageRepo.DeleteMessage(messageID); err != nil {
		log.Printf("DeleteMessage delete error: %v", err)
		return apiError.ErrInternalServerError
	}

	for i := range pointing {
		latest, err := s.messageRepo.FindLatestInConversation(pointing[i].ID, messageID)
		switch {
		case err == nil:
			if err := s.conversationRepo.SetLastMessage(pointing[i].ID, &latest.ID); err != nil {
				log.Printf("DeleteMessage repair error: %v", err)
				return apiError.ErrInternalServerError
			}
		case isNotFound(err):
			if err := s.conversationRepo.SetLastMessage(pointing[i].ID, nil); err != nil {
				log.Printf("DeleteMessage repair error: %v", err)
				return apiError.ErrInternalServerError
			}
		default:
			log.Printf("DeleteMessage repair lookup error: %v", err)
			return apiError.ErrInternalServerError
		}
	}

	return nil
}

// participantConversation resolves a conversation and enforces the only
// access rule the store has: participants, and nobody else.
func (s *chatService) participantConversation(conversationID uuid.UUID, callerID uint) (*models.Conversation, *apiError.Error) {
	conversation, err := s.conversationRepo.FindConversationByID(conversationID)
	if err != nil {
		if isNotFound(err) {
			return nil, apiError.New("conversation not found", http.StatusNotFound)
		}
		log.Printf("conversation lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if !conversation.HasParticipant(callerID) {
		return nil, apiError.New("not authorized to access this conversation", http.StatusForbidden)
	}
	return conversation, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
