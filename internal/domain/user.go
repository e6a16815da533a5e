package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PersonalWorkspaceName returns the conventional name of a user's auto-created
// workspace, e.g. "alice_workspace" for username "alice".
func PersonalWorkspaceName(username string) string {
	return username + "_workspace"
}
