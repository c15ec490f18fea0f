package services

import (
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/models"
)

// fakeConversationStore backs both the conversation and message repository
// interfaces with maps so the service logic runs against real state without
// a database.
type fakeConversationStore struct {
	conversations map[uuid.UUID]*models.Conversation
	messages      map[uuid.UUID]*models.Message
	users         map[uint]*models.User
	now           time.Time
}

func newFakeStore(userIDs ...uint) *fakeConversationStore {
	store := &fakeConversationStore{
		conversations: make(map[uuid.UUID]*models.Conversation),
		messages:      make(map[uuid.UUID]*models.Message),
		users:         make(map[uint]*models.User),
		now:           time.Now(),
	}
	for _, id := range userIDs {
		store.users[id] = &models.User{Model: models.Model{ID: id}}
	}
	return store
}

// tick returns a strictly increasing timestamp so newest-first ordering is
// deterministic.
func (f *fakeConversationStore) tick() time.Time {
	f.now = f.now.Add(time.Millisecond)
	return f.now
}

type fakeConversationRepo struct{ store *fakeConversationStore }

func (f *fakeConversationRepo) FindConversationsByUser(userID uint) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.store.conversations {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeConversationRepo) FindConversationByID(id uuid.UUID) (*models.Conversation, error) {
	c, ok := f.store.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeConversationRepo) FindConversationByPair(a, b uint) (*models.Conversation, error) {
	one, two := models.NormalizePair(a, b)
	for _, c := range f.store.conversations {
		if c.ParticipantOneID == one && c.ParticipantTwoID == two {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConversationRepo) GetOrCreateConversation(a, b uint) (*models.Conversation, bool, error) {
	if existing, err := f.FindConversationByPair(a, b); err == nil {
		return existing, false, nil
	}
	one, two := models.NormalizePair(a, b)
	c := &models.Conversation{
		ID:               uuid.New(),
		ParticipantOneID: one,
		ParticipantTwoID: two,
		CreatedAt:        f.store.tick(),
		UpdatedAt:        f.store.now,
	}
	f.store.conversations[c.ID] = c
	copied := *c
	return &copied, true, nil
}

func (f *fakeConversationRepo) RecordNewMessage(conversationID, messageID uuid.UUID, incrementUnread bool) error {
	c, ok := f.store.conversations[conversationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	id := messageID
	c.LastMessageID = &id
	c.UpdatedAt = f.store.tick()
	if incrementUnread {
		c.UnreadCount++
	}
	return nil
}

func (f *fakeConversationRepo) SetUnreadCount(conversationID uuid.UUID, count int) error {
	c, ok := f.store.conversations[conversationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.UnreadCount = count
	return nil
}

func (f *fakeConversationRepo) ResetUnreadCount(conversationID uuid.UUID) error {
	return f.SetUnreadCount(conversationID, 0)
}

func (f *fakeConversationRepo) FindConversationsByLastMessage(messageID uuid.UUID) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.store.conversations {
		if c.LastMessageID != nil && *c.LastMessageID == messageID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) SetLastMessage(conversationID uuid.UUID, messageID *uuid.UUID) error {
	c, ok := f.store.conversations[conversationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.LastMessageID = messageID
	return nil
}

type fakeMessageRepo struct{ store *fakeConversationStore }

func (f *fakeMessageRepo) CreateMessage(message *models.Message) (*models.Message, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = f.store.tick()
	copied := *message
	f.store.messages[message.ID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeMessageRepo) FindMessageByID(id uuid.UUID) (*models.Message, error) {
	m, ok := f.store.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMessageRepo) FindMessagesByConversation(conversationID uuid.UUID, offset, limit int) ([]models.Message, error) {
	var all []models.Message
	for _, m := range f.store.messages {
		if m.ConversationID == conversationID {
			all = append(all, *m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeMessageRepo) CountMessagesByConversation(conversationID uuid.UUID) (int64, error) {
	var count int64
	for _, m := range f.store.messages {
		if m.ConversationID == conversationID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) MarkConversationMessagesRead(conversationID uuid.UUID, receiverID uint) error {
	for _, m := range f.store.messages {
		if m.ConversationID == conversationID && m.ReceiverID == receiverID {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) MarkMessageRead(id uuid.UUID) error {
	m, ok := f.store.messages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Read = true
	return nil
}

func (f *fakeMessageRepo) CountUnreadByReceiver(receiverID uint) (int64, error) {
	var count int64
	for _, m := range f.store.messages {
		if m.ReceiverID == receiverID && !m.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) DeleteMessage(id uuid.UUID) error {
	delete(f.store.messages, id)
	return nil
}

func (f *fakeMessageRepo) FindLatestInConversation(conversationID uuid.UUID, exclude uuid.UUID) (*models.Message, error) {
	var latest *models.Message
	for _, m := range f.store.messages {
		if m.ConversationID != conversationID || m.ID == exclude {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func newTestChatService(store *fakeConversationStore) ChatService {
	return NewChatService(
		&fakeConversationRepo{store: store},
		&fakeMessageRepo{store: store},
		&fakeStoreAuthRepo{store: store},
		NewRelay(),
		nil,
		&config.Config{},
	)
}

func uintPtr(v uint) *uint          { return &v }
func uuidPtr(v uuid.UUID) *uuid.UUID { return &v }

func TestCreateOrGetConversationPairSymmetry(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	first, created, apiErr := svc.CreateOrGetConversation(1, 2)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if !created {
		t.Fatal("expected first call to create the conversation")
	}

	second, created, apiErr := svc.CreateOrGetConversation(2, 1)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if created {
		t.Fatal("expected reversed pair to resolve to the existing conversation")
	}
	if first.ID != second.ID {
		t.Fatalf("pair (1,2) and (2,1) resolved to different conversations: %s vs %s", first.ID, second.ID)
	}
}

func TestCreateOrGetConversationRejectsSelf(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestChatService(store)

	_, _, apiErr := svc.CreateOrGetConversation(1, 1)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for self conversation, got %v", apiErr)
	}
}

func TestCreateOrGetConversationUnknownUser(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestChatService(store)

	_, _, apiErr := svc.CreateOrGetConversation(1, 99)
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown participant, got %v", apiErr)
	}
}

func TestSendMessageToReceiverCreatesConversation(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	message, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if message.SenderID != 1 || message.ReceiverID != 2 {
		t.Fatalf("message endpoints wrong: sender=%d receiver=%d", message.SenderID, message.ReceiverID)
	}
	if message.Read {
		t.Fatal("new message must start unread")
	}

	conversation := store.conversations[message.ConversationID]
	if conversation == nil {
		t.Fatal("conversation was not created")
	}
	if conversation.LastMessageID == nil || *conversation.LastMessageID != message.ID {
		t.Fatal("lastMessage pointer not set to the new message")
	}
	if conversation.UnreadCount != 1 {
		t.Fatalf("unread count = %d, want 1", conversation.UnreadCount)
	}
}

func TestSendMessageIntoConversationSkipsUnreadBump(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	first, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if _, apiErr := svc.SendMessage(2, &models.SendMessageRequest{
		ConversationID: uuidPtr(first.ConversationID),
		Content:        "hi back",
	}); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if got := store.conversations[first.ConversationID].UnreadCount; got != 1 {
		t.Fatalf("conversation-targeted send changed unread count: got %d, want 1", got)
	}
}

func TestSendMessageValidation(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	cases := []struct {
		name    string
		request *models.SendMessageRequest
	}{
		{"empty content", &models.SendMessageRequest{ReceiverID: uintPtr(2), Content: "   "}},
		{"no target", &models.SendMessageRequest{Content: "hello"}},
		{"both targets", &models.SendMessageRequest{ConversationID: uuidPtr(uuid.New()), ReceiverID: uintPtr(2), Content: "hello"}},
		{"self target", &models.SendMessageRequest{ReceiverID: uintPtr(1), Content: "hello"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, apiErr := svc.SendMessage(1, tc.request)
			if apiErr == nil || apiErr.Status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", apiErr)
			}
		})
	}
}

func TestSendMessageNonParticipant(t *testing.T) {
	store := newFakeStore(1, 2, 3)
	svc := newTestChatService(store)

	message, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	_, apiErr = svc.SendMessage(3, &models.SendMessageRequest{
		ConversationID: uuidPtr(message.ConversationID),
		Content:        "let me in",
	})
	if apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-participant, got %v", apiErr)
	}
}

func TestListMessagesMarksReadAndResetsCounter(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	message, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	page, apiErr := svc.ListMessages(message.ConversationID, 2, 0, 0)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(page.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(page.Messages))
	}
	if !page.Messages[0].Read {
		t.Fatal("returned message should already reflect the read transition")
	}
	if got := store.conversations[message.ConversationID].UnreadCount; got != 0 {
		t.Fatalf("unread count = %d, want 0 after viewing", got)
	}

	// The sender viewing their own sent message must not change its flag
	// semantics; only receiver-addressed messages flip.
	count, apiErr := svc.UnreadCount(2)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if count != 0 {
		t.Fatalf("receiver unread total = %d, want 0", count)
	}
}

func TestListMessagesPagination(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	var conversationID uuid.UUID
	for i := 0; i < 5; i++ {
		message, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
			ReceiverID: uintPtr(2),
			Content:    "message",
		})
		if apiErr != nil {
			t.Fatalf("unexpected error: %v", apiErr)
		}
		conversationID = message.ConversationID
	}

	page, apiErr := svc.ListMessages(conversationID, 2, 2, 2)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("got %d messages on page 2, want 2", len(page.Messages))
	}
	if page.Pagination.Total != 5 || page.Pagination.Pages != 3 {
		t.Fatalf("pagination meta = %+v, want total 5 over 3 pages", page.Pagination)
	}
	if !page.Messages[0].CreatedAt.After(page.Messages[1].CreatedAt) {
		t.Fatal("messages must be ordered newest first")
	}
}

func TestListMessagesNonParticipant(t *testing.T) {
	store := newFakeStore(1, 2, 3)
	svc := newTestChatService(store)

	message, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	_, apiErr = svc.ListMessages(message.ConversationID, 3, 0, 0)
	if apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", apiErr)
	}
}

func TestMarkMessageRead(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	message, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if apiErr := svc.MarkMessageRead(message.ID, 1); apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("sender must not mark their own message read, got %v", apiErr)
	}
	if apiErr := svc.MarkMessageRead(message.ID, 2); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if !store.messages[message.ID].Read {
		t.Fatal("message not marked read")
	}
	// Idempotent on the second call.
	if apiErr := svc.MarkMessageRead(message.ID, 2); apiErr != nil {
		t.Fatalf("marking an already-read message must succeed, got %v", apiErr)
	}
	if apiErr := svc.MarkMessageRead(uuid.New(), 2); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown message, got %v", apiErr)
	}
}

func TestDeleteMessageRepairsLastMessage(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	first, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "first",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	second, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ConversationID: uuidPtr(first.ConversationID),
		Content:        "second",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if apiErr := svc.DeleteMessage(second.ID, 1); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	conversation := store.conversations[first.ConversationID]
	if conversation.LastMessageID == nil || *conversation.LastMessageID != first.ID {
		t.Fatal("lastMessage should fall back to the newest remaining message")
	}

	if apiErr := svc.DeleteMessage(first.ID, 1); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if conversation.LastMessageID != nil {
		t.Fatal("lastMessage should be cleared when no messages remain")
	}
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	message, apiErr := svc.SendMessage(1, &models.SendMessageRequest{
		ReceiverID: uintPtr(2),
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if apiErr := svc.DeleteMessage(message.ID, 2); apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-sender delete, got %v", apiErr)
	}
	if apiErr := svc.DeleteMessage(uuid.New(), 1); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown message, got %v", apiErr)
	}
}

func TestUpdateUnreadCount(t *testing.T) {
	store := newFakeStore(1, 2)
	svc := newTestChatService(store)

	conversation, _, apiErr := svc.CreateOrGetConversation(1, 2)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if _, apiErr := svc.UpdateUnreadCount(conversation.ID, 1, -1); apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative count, got %v", apiErr)
	}

	updated, apiErr := svc.UpdateUnreadCount(conversation.ID, 1, 7)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if updated.UnreadCount != 7 {
		t.Fatalf("unread count = %d, want 7", updated.UnreadCount)
	}
}

func TestGetConversationAccess(t *testing.T) {
	store := newFakeStore(1, 2, 3)
	svc := newTestChatService(store)

	conversation, _, apiErr := svc.CreateOrGetConversation(1, 2)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if _, apiErr := svc.GetConversation(conversation.ID, 3); apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-participant, got %v", apiErr)
	}
	if _, apiErr := svc.GetConversation(uuid.New(), 1); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown conversation, got %v", apiErr)
	}
}

func TestListConversationsOrdering(t *testing.T) {
	store := newFakeStore(1, 2, 3)
	svc := newTestChatService(store)

	first, apiErr := svc.SendMessage(1, &models.SendMessageRequest{ReceiverID: uintPtr(2), Content: "a"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	second, apiErr := svc.SendMessage(1, &models.SendMessageRequest{ReceiverID: uintPtr(3), Content: "b"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	list, apiErr := svc.ListConversations(1)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(list) != 2 {
		t.Fatalf("got %d conversations, want 2", len(list))
	}
	if list[0].ID != second.ConversationID || list[1].ID != first.ConversationID {
		t.Fatal("conversations must be ordered most recently updated first")
	}
}
