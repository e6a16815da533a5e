package domain

import (
	"time"

	"github.com/google/uuid"
)

// Command step types understood by the form renderer.
const (
	CommandOutputText  = "output-text"
	CommandOutputImage = "output-image"
	CommandInputText   = "input-text"
	CommandInputNumber = "input-number"
)

// Command is one step of a formbot script. Order within Commands is
// significant.
type Command struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Formbot is a named command sequence scoped to one workspace folder.
// FilledForms is an append-only history: each element is one submission,
// holding the answers positionally.
type Formbot struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Commands    []Command  `json:"commands"`
	WorkspaceID uuid.UUID  `json:"-"`
	Workspace   string     `json:"workspace"`
	FolderName  string     `json:"folderName"`
	Opened      int        `json:"opened"`
	FilledForms [][]string `json:"filled_forms"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
