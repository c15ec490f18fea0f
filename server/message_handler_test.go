package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dresslink/dresslink/config"
	apiError "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
)

// fakeChatService scripts the responses the handlers should translate to
// HTTP. Only the methods the tests exercise do real work.
type fakeChatService struct {
	sendMessageFn func(callerID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error)
	unreadCount   int64
	listMessages  *models.MessagePage
	listErr       *apiError.Error
}

func (f *fakeChatService) ListConversations(callerID uint) ([]*models.ConversationResponse, *apiError.Error) {
	return nil, nil
}

func (f *fakeChatService) GetConversation(conversationID uuid.UUID, callerID uint) (*models.ConversationResponse, *apiError.Error) {
	return nil, apiError.New("conversation not found", http.StatusNotFound)
}

func (f *fakeChatService) CreateOrGetConversation(callerID, otherUserID uint) (*models.ConversationResponse, bool, *apiError.Error) {
	return &models.ConversationResponse{ID: uuid.New()}, true, nil
}

func (f *fakeChatService) UpdateUnreadCount(conversationID uuid.UUID, callerID uint, count int) (*models.ConversationResponse, *apiError.Error) {
	return nil, nil
}

func (f *fakeChatService) ListMessages(conversationID uuid.UUID, callerID uint, page, limit int) (*models.MessagePage, *apiError.Error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listMessages, nil
}

func (f *fakeChatService) SendMessage(callerID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error) {
	if f.sendMessageFn != nil {
		return f.sendMessageFn(callerID, request)
	}
	return nil, apiError.ErrInternalServerError
}

func (f *fakeChatService) MarkMessageRead(messageID uuid.UUID, callerID uint) *apiError.Error {
	return nil
}

func (f *fakeChatService) UnreadCount(callerID uint) (int64, *apiError.Error) {
	return f.unreadCount, nil
}

func (f *fakeChatService) DeleteMessage(messageID uuid.UUID, callerID uint) *apiError.Error {
	return nil
}

// newTestRouter wires the chat routes behind a stubbed identity so handler
// translation can be tested without real tokens.
func newTestRouter(chat *fakeChatService, userID uint) *gin.Engine {
	os.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)

	s := &Server{Config: &config.Config{}, ChatService: chat}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", &models.User{Model: models.Model{ID: userID}})
		c.Set("userID", userID)
		c.Set("role", models.RoleCustomer)
		c.Next()
	})
	r.GET("/messages/unread-count", s.handleUnreadCount())
	r.GET("/messages/:conversationId", s.handleListMessages())
	r.POST("/messages", s.handleSendMessage())
	r.PATCH("/messages/:messageId/read", s.handleMarkMessageRead())
	r.DELETE("/messages/:messageId", s.handleDeleteMessage())
	return r
}

func TestHandleSendMessageCreated(t *testing.T) {
	conversationID := uuid.New()
	chat := &fakeChatService{
		sendMessageFn: func(callerID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error) {
			if callerID != 1 {
				t.Fatalf("callerID = %d, want 1", callerID)
			}
			return &models.Message{
				ID:             uuid.New(),
				ConversationID: conversationID,
				SenderID:       callerID,
				ReceiverID:     2,
				Content:        request.Content,
			}, nil
		},
	}
	router := newTestRouter(chat, 1)

	body, _ := json.Marshal(gin.H{"receiver_id": 2, "content": "hello"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
}

func TestHandleSendMessageErrorMapping(t *testing.T) {
	chat := &fakeChatService{
		sendMessageFn: func(callerID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error) {
			return nil, apiError.New("message content cannot be empty", http.StatusBadRequest)
		},
	}
	router := newTestRouter(chat, 1)

	body, _ := json.Marshal(gin.H{"receiver_id": 2, "content": " "})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleUnreadCountRouteShadowing(t *testing.T) {
	chat := &fakeChatService{
		unreadCount: 3,
		listErr:     apiError.New("conversation not found", http.StatusNotFound),
	}
	router := newTestRouter(chat, 1)

	// The fixed path must win over the :conversationId parameter.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/unread-count", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data struct {
			UnreadCount int64 `json:"unread_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Data.UnreadCount != 3 {
		t.Fatalf("unread_count = %d, want 3", envelope.Data.UnreadCount)
	}
}

func TestHandleListMessagesInvalidID(t *testing.T) {
	router := newTestRouter(&fakeChatService{}, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleMarkMessageRead(t *testing.T) {
	router := newTestRouter(&fakeChatService{}, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/messages/"+uuid.NewString()+"/read", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
