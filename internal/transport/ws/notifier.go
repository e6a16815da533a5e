package ws

import (
	"log"

	"github.com/google/uuid"

	"github.com/anshk25/formbot/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyFormbotCreated(fb *domain.Formbot) {
	n.notifyFormbot(EventTypeFormbotCreated, fb)
}

func (n *HubNotifier) NotifyFormbotUpdated(fb *domain.Formbot) {
	n.notifyFormbot(EventTypeFormbotUpdated, fb)
}

func (n *HubNotifier) NotifyFormbotDeleted(workspaceID uuid.UUID, folderName, name string) {
	evt, err := NewEvent(EventTypeFormbotDeleted, &workspaceID, FormbotDeletedPayload{
		FolderName: folderName,
		Name:       name,
	})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToWorkspace(workspaceID, evt)
}

func (n *HubNotifier) NotifyFolderAdded(workspaceID uuid.UUID, folderName string) {
	n.notifyFolder(EventTypeFolderAdded, workspaceID, folderName)
}

func (n *HubNotifier) NotifyFolderRemoved(workspaceID uuid.UUID, folderName string) {
	n.notifyFolder(EventTypeFolderDeleted, workspaceID, folderName)
}

func (n *HubNotifier) NotifyWorkspaceShared(ws *domain.Workspace) {
	evt, err := NewEvent(EventTypeWorkspaceShared, &ws.ID, SharedPayload{SharedWith: ws.SharedWith})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToWorkspace(ws.ID, evt)
}

func (n *HubNotifier) notifyFormbot(eventType string, fb *domain.Formbot) {
	evt, err := NewEvent(eventType, &fb.WorkspaceID, FormbotPayload{Formbot: *fb})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToWorkspace(fb.WorkspaceID, evt)
}

func (n *HubNotifier) notifyFolder(eventType string, workspaceID uuid.UUID, folderName string) {
	evt, err := NewEvent(eventType, &workspaceID, FolderPayload{Name: folderName})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToWorkspace(workspaceID, evt)
}
