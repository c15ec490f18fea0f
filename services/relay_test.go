package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeSession struct {
	events []RelayEvent
	fail   bool
}

func (f *fakeSession) WriteJSON(v interface{}) error {
	if f.fail {
		return errors.New("write failed")
	}
	if event, ok := v.(RelayEvent); ok {
		f.events = append(f.events, event)
	}
	return nil
}

func TestRelayDeliverToRegisteredSessions(t *testing.T) {
	relay := NewRelay()
	one := &fakeSession{}
	two := &fakeSession{}
	relay.Register(7, one)
	relay.Register(7, two)

	delivered := relay.Deliver(7, RelayEvent{
		SenderID:       1,
		ReceiverID:     7,
		ConversationID: uuid.New(),
		Content:        "hello",
	})
	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}
	if len(one.events) != 1 || len(two.events) != 1 {
		t.Fatal("both sessions should receive the event")
	}
	if one.events[0].SentAt.IsZero() {
		t.Fatal("SentAt must be stamped at delivery")
	}
}

func TestRelayDeliverOfflineReceiver(t *testing.T) {
	relay := NewRelay()
	if delivered := relay.Deliver(42, RelayEvent{SenderID: 1, ReceiverID: 42, Content: "hi"}); delivered != 0 {
		t.Fatalf("delivered = %d, want 0 for offline receiver", delivered)
	}
}

func TestRelayUnregister(t *testing.T) {
	relay := NewRelay()
	session := &fakeSession{}
	relay.Register(7, session)
	if relay.SessionCount(7) != 1 {
		t.Fatalf("session count = %d, want 1", relay.SessionCount(7))
	}

	relay.Unregister(7, session)
	if relay.SessionCount(7) != 0 {
		t.Fatalf("session count = %d, want 0 after unregister", relay.SessionCount(7))
	}
	if delivered := relay.Deliver(7, RelayEvent{Content: "late"}); delivered != 0 {
		t.Fatal("unregistered session must not receive events")
	}
}

func TestRelayFailedWriteDoesNotCount(t *testing.T) {
	relay := NewRelay()
	good := &fakeSession{}
	bad := &fakeSession{fail: true}
	relay.Register(7, good)
	relay.Register(7, bad)

	if delivered := relay.Deliver(7, RelayEvent{Content: "hello"}); delivered != 1 {
		t.Fatalf("delivered = %d, want 1 when one write fails", delivered)
	}
}
