// Package repotest provides in-memory implementations of the repository
// interfaces for tests. Reads resolve grant emails and formbot workspace
// names through the stored user/workspace records, mirroring the SQL joins.
package repotest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/anshk25/formbot/internal/domain"
)

type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*domain.User
	workspaces map[uuid.UUID]*domain.Workspace
	formbots   map[uuid.UUID]*domain.Formbot

	// insertion order, so listings are deterministic
	workspaceOrder []uuid.UUID
	formbotOrder   []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]*domain.User),
		workspaces: make(map[uuid.UUID]*domain.Workspace),
		formbots:   make(map[uuid.UUID]*domain.Formbot),
	}
}

func (s *Store) UserRepo() *UserRepo           { return &UserRepo{s} }
func (s *Store) WorkspaceRepo() *WorkspaceRepo { return &WorkspaceRepo{s} }
func (s *Store) FormbotRepo() *FormbotRepo     { return &FormbotRepo{s} }

// WorkspaceCount reports how many workspaces exist, for uniqueness assertions.
func (s *Store) WorkspaceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

type UserRepo struct{ s *Store }

func (r *UserRepo) CreateWithWorkspace(_ context.Context, user *domain.User, ws *domain.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = copyUser(user)
	r.s.workspaces[ws.ID] = copyWorkspace(ws)
	r.s.workspaceOrder = append(r.s.workspaceOrder, ws.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *UserRepo) Find(_ context.Context, username, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return (username == "" || u.Username == username) && (email == "" || u.Email == email)
	})
}

func (r *UserRepo) Update(_ context.Context, user *domain.User, oldWorkspaceName, newWorkspaceName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = copyUser(user)
	if oldWorkspaceName != newWorkspaceName {
		for _, ws := range r.s.workspaces {
			if ws.Name == oldWorkspaceName && ws.OwnerID == user.ID {
				ws.Name = newWorkspaceName
			}
		}
	}
	return nil
}

func (r *UserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

type WorkspaceRepo struct{ s *Store }

func (r *WorkspaceRepo) GetByName(_ context.Context, name string) (*domain.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ws := range r.s.workspaces {
		if ws.Name == name {
			return r.s.renderWorkspace(ws), nil
		}
	}
	return nil, nil
}

func (r *WorkspaceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Workspace
	for _, id := range r.s.workspaceOrder {
		ws, ok := r.s.workspaces[id]
		if !ok {
			continue
		}
		for _, g := range ws.SharedWith {
			if g.UserID == userID {
				out = append(out, *r.s.renderWorkspace(ws))
				break
			}
		}
	}
	return out, nil
}

func (r *WorkspaceRepo) GetGrant(_ context.Context, workspaceID, userID uuid.UUID) (*domain.Grant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ws, ok := r.s.workspaces[workspaceID]
	if !ok {
		return nil, nil
	}
	for _, g := range ws.SharedWith {
		if g.UserID == userID {
			grant := g
			if u, ok := r.s.users[g.UserID]; ok {
				grant.Email = u.Email
			}
			return &grant, nil
		}
	}
	return nil, nil
}

func (r *WorkspaceRepo) AddGrants(_ context.Context, workspaceID uuid.UUID, grants []domain.Grant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ws, ok := r.s.workspaces[workspaceID]
	if !ok {
		return nil
	}
next:
	for _, g := range grants {
		for _, existing := range ws.SharedWith {
			if existing.UserID == g.UserID {
				continue next
			}
		}
		ws.SharedWith = append(ws.SharedWith, g)
	}
	return nil
}

func (r *WorkspaceRepo) AddFolder(_ context.Context, workspaceID uuid.UUID, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ws, ok := r.s.workspaces[workspaceID]
	if !ok {
		return nil
	}
	for _, f := range ws.Folders {
		if f == name {
			return nil
		}
	}
	ws.Folders = append(ws.Folders, name)
	return nil
}

func (r *WorkspaceRepo) RemoveFolder(_ context.Context, workspaceID uuid.UUID, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ws, ok := r.s.workspaces[workspaceID]
	if !ok {
		return nil
	}
	folders := ws.Folders[:0]
	for _, f := range ws.Folders {
		if f != name {
			folders = append(folders, f)
		}
	}
	ws.Folders = folders
	for id, fb := range r.s.formbots {
		if fb.WorkspaceID == workspaceID && fb.FolderName == name {
			delete(r.s.formbots, id)
		}
	}
	return nil
}

type FormbotRepo struct{ s *Store }

func (r *FormbotRepo) Create(_ context.Context, fb *domain.Formbot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.formbots[fb.ID] = copyFormbot(fb)
	r.s.formbotOrder = append(r.s.formbotOrder, fb.ID)
	return nil
}

func (r *FormbotRepo) GetByKey(_ context.Context, workspaceID uuid.UUID, folderName, name string) (*domain.Formbot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, fb := range r.s.formbots {
		if fb.WorkspaceID == workspaceID && fb.FolderName == folderName && fb.Name == name {
			return r.s.renderFormbot(fb), nil
		}
	}
	return nil, nil
}

func (r *FormbotRepo) ListByFolder(_ context.Context, workspaceID uuid.UUID, folderName string) ([]domain.Formbot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Formbot
	for _, id := range r.s.formbotOrder {
		fb, ok := r.s.formbots[id]
		if !ok {
			continue
		}
		if fb.WorkspaceID == workspaceID && fb.FolderName == folderName {
			out = append(out, *r.s.renderFormbot(fb))
		}
	}
	return out, nil
}

func (r *FormbotRepo) Update(_ context.Context, fb *domain.Formbot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.formbots[fb.ID] = copyFormbot(fb)
	return nil
}

func (r *FormbotRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.formbots, id)
	return nil
}

// renderWorkspace copies a workspace with grant emails resolved through the
// user records, like the grants/users join.
func (s *Store) renderWorkspace(ws *domain.Workspace) *domain.Workspace {
	out := copyWorkspace(ws)
	for i, g := range out.SharedWith {
		if u, ok := s.users[g.UserID]; ok {
			out.SharedWith[i].Email = u.Email
		}
	}
	return out
}

// renderFormbot copies a formbot with the current workspace name, like the
// formbots/workspaces join.
func (s *Store) renderFormbot(fb *domain.Formbot) *domain.Formbot {
	out := copyFormbot(fb)
	if ws, ok := s.workspaces[fb.WorkspaceID]; ok {
		out.Workspace = ws.Name
	}
	return out
}

func copyUser(u *domain.User) *domain.User {
	out := *u
	return &out
}

func copyWorkspace(ws *domain.Workspace) *domain.Workspace {
	out := *ws
	out.SharedWith = append([]domain.Grant(nil), ws.SharedWith...)
	out.Folders = append([]string(nil), ws.Folders...)
	return &out
}

func copyFormbot(fb *domain.Formbot) *domain.Formbot {
	out := *fb
	out.Commands = append([]domain.Command(nil), fb.Commands...)
	out.FilledForms = make([][]string, len(fb.FilledForms))
	for i, record := range fb.FilledForms {
		out.FilledForms[i] = append([]string(nil), record...)
	}
	return &out
}
