package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/anshk25/formbot/internal/service"
	"github.com/anshk25/formbot/internal/transport/http/middleware"
	"github.com/anshk25/formbot/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())

	var input service.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateUserUpdate(input.OldUsername, input.OldEmail); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Update(r.Context(), callerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrNotSelf):
			writeError(w, http.StatusForbidden, "You can only update your own account")
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username "+input.NewUsername+" already exists")
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email "+input.NewEmail+" already exists")
		case errors.Is(err, service.ErrInvalidCreds):
			writeError(w, http.StatusUnauthorized, "Old password does not match")
		default:
			log.Printf("ERROR update user: %v", err)
			writeError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Details serves /alluserdetails lookups by username and/or email, returning
// only the public identity fields.
func (h *UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	email := r.URL.Query().Get("email")
	if username == "" && email == "" {
		writeError(w, http.StatusBadRequest, "username or email query parameter required")
		return
	}

	user, err := h.userService.Lookup(r.Context(), username, email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
		} else {
			log.Printf("ERROR user details: %v", err)
			writeError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"username": user.Username,
		"email":    user.Email,
	})
}
