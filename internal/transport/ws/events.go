package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/anshk25/formbot/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeWorkspaceSubscribe   = "workspace.subscribe"
	EventTypeWorkspaceUnsubscribe = "workspace.unsubscribe"
	EventTypePing                 = "ping"
)

// Event types - Server → Client
const (
	EventTypeFormbotCreated  = "formbot.created"
	EventTypeFormbotUpdated  = "formbot.updated"
	EventTypeFormbotDeleted  = "formbot.deleted"
	EventTypeFolderAdded     = "folder.added"
	EventTypeFolderDeleted   = "folder.deleted"
	EventTypeWorkspaceShared = "workspace.shared"
	EventTypePresence        = "presence"
	EventTypePong            = "pong"
	EventTypeError           = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type        string          `json:"type"`
	WorkspaceID *uuid.UUID      `json:"workspace_id,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Timestamp   int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type WorkspacePayload struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

// --- Server → Client payloads ---

type FormbotPayload struct {
	domain.Formbot
}

type FormbotDeletedPayload struct {
	FolderName string `json:"folderName"`
	Name       string `json:"name"`
}

type FolderPayload struct {
	Name string `json:"name"`
}

type SharedPayload struct {
	SharedWith []domain.Grant `json:"sharedWith"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"` // "online" | "offline"
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, workspaceID *uuid.UUID, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:        eventType,
		WorkspaceID: workspaceID,
		Payload:     data,
		Timestamp:   time.Now().Unix(),
	}, nil
}
