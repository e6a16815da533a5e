package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/anshk25/formbot/internal/domain"
	"github.com/anshk25/formbot/internal/service"
	"github.com/anshk25/formbot/internal/transport/http/middleware"
	"github.com/anshk25/formbot/pkg/validator"
)

type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	workspaces, err := h.workspaceService.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list workspaces: %v", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if workspaces == nil {
		workspaces = []domain.Workspace{}
	}

	writeJSON(w, http.StatusOK, workspaces)
}

func (h *WorkspaceHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.PathValue("id")

	var body struct {
		SharedWith []domain.Grant `json:"sharedWith"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateGrants(body.SharedWith); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ws, err := h.workspaceService.Share(r.Context(), userID, workspaceName, body.SharedWith)
	if err != nil {
		h.writeServiceError(w, "share workspace", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Workspace updated",
		"workspace": ws,
	})
}

func (h *WorkspaceHandler) AddFolder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.PathValue("id")

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateFolder(body.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ws, err := h.workspaceService.AddFolder(r.Context(), userID, workspaceName, body.Name)
	if err != nil {
		if errors.Is(err, service.ErrFolderExists) {
			writeError(w, http.StatusBadRequest, "Folder "+body.Name+" already exists in this workspace")
			return
		}
		h.writeServiceError(w, "add folder", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Folder added",
		"workspace": ws,
	})
}

func (h *WorkspaceHandler) Folders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.PathValue("id")

	folders, err := h.workspaceService.Folders(r.Context(), userID, workspaceName)
	if err != nil {
		h.writeServiceError(w, "fetch folders", err)
		return
	}

	writeJSON(w, http.StatusOK, folders)
}

func (h *WorkspaceHandler) RemoveFolder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.PathValue("id")
	folderName := r.PathValue("folderName")

	ws, err := h.workspaceService.RemoveFolder(r.Context(), userID, workspaceName, folderName)
	if err != nil {
		h.writeServiceError(w, "delete folder", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Folder deleted",
		"workspace": ws,
	})
}

// writeServiceError maps the workspace-level failures shared by every
// endpoint; endpoint-specific errors are matched before calling this.
func (h *WorkspaceHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound):
		writeError(w, http.StatusNotFound, "Workspace not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "You do not have access to this workspace")
	case errors.Is(err, service.ErrViewOnly):
		writeError(w, http.StatusForbidden, "Edit access required")
	case errors.Is(err, service.ErrEmailNotRegistered), errors.Is(err, service.ErrAlreadyShared):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
