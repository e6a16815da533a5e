package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anshk25/formbot/internal/domain"
	"github.com/anshk25/formbot/internal/repository"
)

var (
	ErrFormbotExists   = errors.New("formbot of same name already exists in this folder")
	ErrFormbotNotFound = errors.New("formbot not found")
	ErrNoFormbots      = errors.New("no formbots found for the specified workspace and folder")
)

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyFormbotCreated(fb *domain.Formbot)
	NotifyFormbotUpdated(fb *domain.Formbot)
	NotifyFormbotDeleted(workspaceID uuid.UUID, folderName, name string)
	NotifyFolderAdded(workspaceID uuid.UUID, folderName string)
	NotifyFolderRemoved(workspaceID uuid.UUID, folderName string)
	NotifyWorkspaceShared(ws *domain.Workspace)
}

type FormbotService struct {
	formbotRepo      repository.FormbotRepository
	workspaceService *WorkspaceService
	notifier         Notifier
}

func NewFormbotService(formbotRepo repository.FormbotRepository, workspaceService *WorkspaceService) *FormbotService {
	return &FormbotService{
		formbotRepo:      formbotRepo,
		workspaceService: workspaceService,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *FormbotService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreateFormbotInput struct {
	Name        string           `json:"name"`
	Commands    []domain.Command `json:"commands"`
	WorkspaceID string           `json:"workspaceId"`
	FolderName  string           `json:"folderName"`
	Opened      int              `json:"opened"`
	FilledForms [][]string       `json:"filled_forms"`
}

// ModifyFormbotInput carries a partial update; absent fields leave the
// formbot untouched. FilledForms, when present, is appended to the history as
// a single record, never spread into its elements.
type ModifyFormbotInput struct {
	Name        string           `json:"name"`
	Commands    []domain.Command `json:"commands"`
	Opened      *int             `json:"opened"`
	FilledForms []string         `json:"filled_forms"`
}

func (s *FormbotService) Create(ctx context.Context, userID uuid.UUID, input CreateFormbotInput) (*domain.Formbot, error) {
	ws, err := s.workspaceService.requireGrant(ctx, userID, input.WorkspaceID, true)
	if err != nil {
		return nil, err
	}

	existing, err := s.formbotRepo.GetByKey(ctx, ws.ID, input.FolderName, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFormbotExists
	}

	now := time.Now()
	fb := &domain.Formbot{
		ID:          uuid.New(),
		Name:        input.Name,
		Commands:    input.Commands,
		WorkspaceID: ws.ID,
		Workspace:   ws.Name,
		FolderName:  input.FolderName,
		Opened:      input.Opened,
		FilledForms: input.FilledForms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.formbotRepo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("creating formbot: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFormbotCreated(fb)
	}
	return fb, nil
}

func (s *FormbotService) Modify(ctx context.Context, userID uuid.UUID, workspaceName, folderName, name string, input ModifyFormbotInput) (*domain.Formbot, error) {
	ws, err := s.workspaceService.requireGrant(ctx, userID, workspaceName, true)
	if err != nil {
		return nil, err
	}

	fb, err := s.formbotRepo.GetByKey(ctx, ws.ID, folderName, name)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, ErrFormbotNotFound
	}

	if input.Name != "" && input.Name != fb.Name {
		taken, err := s.formbotRepo.GetByKey(ctx, ws.ID, folderName, input.Name)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrFormbotExists
		}
		fb.Name = input.Name
	}
	if input.Commands != nil {
		fb.Commands = input.Commands
	}
	if input.Opened != nil {
		fb.Opened = *input.Opened
	}
	if input.FilledForms != nil {
		fb.FilledForms = append(fb.FilledForms, input.FilledForms)
	}

	fb.UpdatedAt = time.Now()
	if err := s.formbotRepo.Update(ctx, fb); err != nil {
		return nil, fmt.Errorf("updating formbot: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFormbotUpdated(fb)
	}
	return fb, nil
}

func (s *FormbotService) Delete(ctx context.Context, userID uuid.UUID, workspaceName, folderName, name string) error {
	ws, err := s.workspaceService.requireGrant(ctx, userID, workspaceName, true)
	if err != nil {
		return err
	}

	fb, err := s.formbotRepo.GetByKey(ctx, ws.ID, folderName, name)
	if err != nil {
		return err
	}
	if fb == nil {
		return ErrFormbotNotFound
	}

	if err := s.formbotRepo.Delete(ctx, fb.ID); err != nil {
		return fmt.Errorf("deleting formbot: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFormbotDeleted(ws.ID, folderName, name)
	}
	return nil
}

// List returns the formbots in one folder. An empty folder is reported as
// ErrNoFormbots; callers treat zero results as an error, not an empty list.
func (s *FormbotService) List(ctx context.Context, userID uuid.UUID, workspaceName, folderName string) ([]domain.Formbot, error) {
	ws, err := s.workspaceService.requireGrant(ctx, userID, workspaceName, false)
	if err != nil {
		return nil, err
	}

	formbots, err := s.formbotRepo.ListByFolder(ctx, ws.ID, folderName)
	if err != nil {
		return nil, err
	}
	if len(formbots) == 0 {
		return nil, ErrNoFormbots
	}
	return formbots, nil
}

func (s *FormbotService) Get(ctx context.Context, userID uuid.UUID, workspaceName, folderName, name string) (*domain.Formbot, error) {
	ws, err := s.workspaceService.requireGrant(ctx, userID, workspaceName, false)
	if err != nil {
		return nil, err
	}

	fb, err := s.formbotRepo.GetByKey(ctx, ws.ID, folderName, name)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, ErrFormbotNotFound
	}
	return fb, nil
}
