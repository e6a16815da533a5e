package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/anshk25/formbot/internal/domain"
	"github.com/anshk25/formbot/internal/repository"
)

var (
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrNotMember          = errors.New("no access to this workspace")
	ErrViewOnly           = errors.New("edit access required")
	ErrEmailNotRegistered = errors.New("email is not a registered user")
	ErrAlreadyShared      = errors.New("email already has access to this workspace")
	ErrFolderExists       = errors.New("folder already exists in this workspace")
)

type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	userRepo      repository.UserRepository
	notifier      Notifier
}

func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, userRepo repository.UserRepository) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *WorkspaceService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	return s.workspaceRepo.ListByUser(ctx, userID)
}

// Share appends the proposed grants to the workspace. Every email must belong
// to a registered user and must not already hold a grant; any bad entry
// rejects the whole batch with the list unchanged.
func (s *WorkspaceService) Share(ctx context.Context, userID uuid.UUID, workspaceName string, grants []domain.Grant) (*domain.Workspace, error) {
	ws, err := s.requireGrant(ctx, userID, workspaceName, true)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for i, g := range grants {
		user, err := s.userRepo.GetByEmail(ctx, g.Email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("%w: %s", ErrEmailNotRegistered, g.Email)
		}
		if _, dup := seen[g.Email]; dup || ws.HasEmail(g.Email) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyShared, g.Email)
		}
		seen[g.Email] = struct{}{}
		grants[i].UserID = user.ID
	}

	if err := s.workspaceRepo.AddGrants(ctx, ws.ID, grants); err != nil {
		return nil, fmt.Errorf("adding grants: %w", err)
	}

	updated, err := s.workspaceRepo.GetByName(ctx, workspaceName)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyWorkspaceShared(updated)
	}
	return updated, nil
}

func (s *WorkspaceService) AddFolder(ctx context.Context, userID uuid.UUID, workspaceName, folderName string) (*domain.Workspace, error) {
	ws, err := s.requireGrant(ctx, userID, workspaceName, true)
	if err != nil {
		return nil, err
	}

	if ws.HasFolder(folderName) {
		return nil, ErrFolderExists
	}

	if err := s.workspaceRepo.AddFolder(ctx, ws.ID, folderName); err != nil {
		return nil, fmt.Errorf("adding folder: %w", err)
	}

	updated, err := s.workspaceRepo.GetByName(ctx, workspaceName)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyFolderAdded(ws.ID, folderName)
	}
	return updated, nil
}

func (s *WorkspaceService) Folders(ctx context.Context, userID uuid.UUID, workspaceName string) ([]string, error) {
	ws, err := s.requireGrant(ctx, userID, workspaceName, false)
	if err != nil {
		return nil, err
	}
	return ws.Folders, nil
}

// RemoveFolder deletes the folder and its formbots. Removing a folder that is
// not in the list succeeds without changing anything; a missing workspace is
// still an error.
func (s *WorkspaceService) RemoveFolder(ctx context.Context, userID uuid.UUID, workspaceName, folderName string) (*domain.Workspace, error) {
	ws, err := s.requireGrant(ctx, userID, workspaceName, true)
	if err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.RemoveFolder(ctx, ws.ID, folderName); err != nil {
		return nil, fmt.Errorf("removing folder: %w", err)
	}

	updated, err := s.workspaceRepo.GetByName(ctx, workspaceName)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyFolderRemoved(ws.ID, folderName)
	}
	return updated, nil
}

// requireGrant resolves the workspace by name and checks the caller's grant:
// any access level for reads, edit for mutations.
func (s *WorkspaceService) requireGrant(ctx context.Context, userID uuid.UUID, workspaceName string, needEdit bool) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.GetByName(ctx, workspaceName)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	grant, err := s.workspaceRepo.GetGrant(ctx, ws.ID, userID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, ErrNotMember
	}
	if needEdit && grant.Access != domain.AccessEdit {
		return nil, ErrViewOnly
	}

	return ws, nil
}
