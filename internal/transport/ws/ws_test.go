package ws

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewEventEnvelope(t *testing.T) {
	wsID := uuid.New()
	evt, err := NewEvent(EventTypeFolderAdded, &wsID, FolderPayload{Name: "plans"})
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if evt.Type != EventTypeFolderAdded {
		t.Fatalf("type = %q", evt.Type)
	}
	if evt.Timestamp == 0 {
		t.Fatal("timestamp not set")
	}

	var p FolderPayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p.Name != "plans" {
		t.Fatalf("payload name = %q", p.Name)
	}
}

func TestClientSubscriptions(t *testing.T) {
	client := NewClient(NewHub(), nil, uuid.New())
	wsID := uuid.New()

	if client.IsSubscribed(wsID) {
		t.Fatal("fresh client should not be subscribed")
	}

	client.Subscribe(wsID)
	if !client.IsSubscribed(wsID) {
		t.Fatal("subscribe did not register")
	}

	client.Unsubscribe(wsID)
	if client.IsSubscribed(wsID) {
		t.Fatal("unsubscribe did not remove")
	}
}

func TestHandleEventRoutesSubscriptions(t *testing.T) {
	client := NewClient(NewHub(), nil, uuid.New())
	wsID := uuid.New()

	payload, _ := json.Marshal(WorkspacePayload{WorkspaceID: wsID})
	client.handleEvent(&Event{Type: EventTypeWorkspaceSubscribe, Payload: payload})
	if !client.IsSubscribed(wsID) {
		t.Fatal("subscribe event not applied")
	}

	client.handleEvent(&Event{Type: EventTypeWorkspaceUnsubscribe, Payload: payload})
	if client.IsSubscribed(wsID) {
		t.Fatal("unsubscribe event not applied")
	}
}

func TestHandleEventPing(t *testing.T) {
	client := NewClient(NewHub(), nil, uuid.New())

	client.handleEvent(&Event{Type: EventTypePing})

	select {
	case data := <-client.send:
		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("unmarshal pong: %v", err)
		}
		if evt.Type != EventTypePong {
			t.Fatalf("type = %q, want pong", evt.Type)
		}
	default:
		t.Fatal("ping produced no reply")
	}
}

func TestHandleEventUnknownType(t *testing.T) {
	client := NewClient(NewHub(), nil, uuid.New())

	client.handleEvent(&Event{Type: "bogus"})

	select {
	case data := <-client.send:
		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("unmarshal error event: %v", err)
		}
		if evt.Type != EventTypeError {
			t.Fatalf("type = %q, want error", evt.Type)
		}
		var p ErrorPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if p.Code != "UNKNOWN_EVENT" {
			t.Fatalf("code = %q", p.Code)
		}
	default:
		t.Fatal("unknown event produced no reply")
	}
}
