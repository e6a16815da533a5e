package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/anshk25/formbot/internal/domain"
)

type UserRepository interface {
	// CreateWithWorkspace persists the user together with their personal
	// workspace (grants and folders included) as one atomic unit.
	CreateWithWorkspace(ctx context.Context, user *domain.User, ws *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Find matches on whichever of username/email are non-empty.
	Find(ctx context.Context, username, email string) (*domain.User, error)
	// Update rewrites the user row and, when the workspace names differ,
	// renames the user's personal workspace in the same transaction.
	Update(ctx context.Context, user *domain.User, oldWorkspaceName, newWorkspaceName string) error
}

type WorkspaceRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Workspace, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error)
	GetGrant(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Grant, error)
	AddGrants(ctx context.Context, workspaceID uuid.UUID, grants []domain.Grant) error
	AddFolder(ctx context.Context, workspaceID uuid.UUID, name string) error
	// RemoveFolder deletes the folder and every formbot inside it. Removing
	// a folder that does not exist is not an error.
	RemoveFolder(ctx context.Context, workspaceID uuid.UUID, name string) error
}

type FormbotRepository interface {
	Create(ctx context.Context, fb *domain.Formbot) error
	GetByKey(ctx context.Context, workspaceID uuid.UUID, folderName, name string) (*domain.Formbot, error)
	ListByFolder(ctx context.Context, workspaceID uuid.UUID, folderName string) ([]domain.Formbot, error)
	Update(ctx context.Context, fb *domain.Formbot) error
	Delete(ctx context.Context, id uuid.UUID) error
}
