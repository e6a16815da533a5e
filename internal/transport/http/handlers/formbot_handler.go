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

type FormbotHandler struct {
	formbotService *service.FormbotService
}

func NewFormbotHandler(formbotService *service.FormbotService) *FormbotHandler {
	return &FormbotHandler{formbotService: formbotService}
}

func (h *FormbotHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreateFormbotInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateFormbot(input.Name, input.WorkspaceID, input.FolderName, commandTypes(input.Commands)); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	fb, err := h.formbotService.Create(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrFormbotExists) {
			writeError(w, http.StatusBadRequest, "Formbot of same name already exists!")
			return
		}
		h.writeServiceError(w, "create formbot", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Formbot created",
		"formbot": fb,
	})
}

func (h *FormbotHandler) Modify(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.PathValue("workspaceId")
	folderName := r.PathValue("folderName")
	name := r.PathValue("formbotId")

	var input service.ModifyFormbotInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateCommands(commandTypes(input.Commands)); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	fb, err := h.formbotService.Modify(r.Context(), userID, workspaceName, folderName, name, input)
	if err != nil {
		if errors.Is(err, service.ErrFormbotExists) {
			writeError(w, http.StatusBadRequest, "Formbot of same name already exists!")
			return
		}
		h.writeServiceError(w, "modify formbot", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Formbot updated",
		"formbot": fb,
	})
}

func (h *FormbotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.PathValue("workspaceId")
	folderName := r.PathValue("folderName")
	name := r.PathValue("formbotId")

	if err := h.formbotService.Delete(r.Context(), userID, workspaceName, folderName, name); err != nil {
		h.writeServiceError(w, "delete formbot", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Formbot deleted"})
}

func (h *FormbotHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.URL.Query().Get("workspaceId")
	folderName := r.URL.Query().Get("folderName")

	if workspaceName == "" || folderName == "" {
		writeError(w, http.StatusBadRequest, "workspaceId and folderName query parameters required")
		return
	}

	formbots, err := h.formbotService.List(r.Context(), userID, workspaceName, folderName)
	if err != nil {
		h.writeServiceError(w, "fetch formbots", err)
		return
	}

	writeJSON(w, http.StatusOK, formbots)
}

func (h *FormbotHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceName := r.PathValue("workspaceId")
	folderName := r.PathValue("folderName")
	name := r.PathValue("formbotId")

	fb, err := h.formbotService.Get(r.Context(), userID, workspaceName, folderName, name)
	if err != nil {
		h.writeServiceError(w, "fetch formbot", err)
		return
	}

	writeJSON(w, http.StatusOK, fb)
}

func (h *FormbotHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound):
		writeError(w, http.StatusNotFound, "Workspace not found")
	case errors.Is(err, service.ErrFormbotNotFound):
		writeError(w, http.StatusNotFound, "Formbot not found")
	case errors.Is(err, service.ErrNoFormbots):
		writeError(w, http.StatusNotFound, "No formbots found for the specified workspace and folder")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "You do not have access to this workspace")
	case errors.Is(err, service.ErrViewOnly):
		writeError(w, http.StatusForbidden, "Edit access required")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

func commandTypes(commands []domain.Command) []string {
	types := make([]string, len(commands))
	for i, c := range commands {
		types[i] = c.Type
	}
	return types
}
