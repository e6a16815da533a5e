package domain

import (
	"time"

	"github.com/google/uuid"
)

// Access levels a grant can carry.
const (
	AccessView = "view"
	AccessEdit = "edit"
)

// DefaultFolder is created in every new personal workspace.
const DefaultFolder = "root"

type Workspace struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OwnerID    uuid.UUID `json:"owner_id"`
	SharedWith []Grant   `json:"sharedWith"`
	Folders    []string  `json:"folders"`
	CreatedAt  time.Time `json:"created_at"`
}

// Grant gives one registered user access to a workspace. The email is the
// user-facing identity; UserID is what is actually stored, so a later email
// change can never leave a stale grant behind.
type Grant struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	Access string    `json:"access"`
}

// HasEmail reports whether the workspace is already shared with email.
func (w *Workspace) HasEmail(email string) bool {
	for _, g := range w.SharedWith {
		if g.Email == email {
			return true
		}
	}
	return false
}

// HasFolder reports whether the workspace contains the named folder.
func (w *Workspace) HasFolder(name string) bool {
	for _, f := range w.Folders {
		if f == name {
			return true
		}
	}
	return false
}
