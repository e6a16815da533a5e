package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/anshk25/formbot/internal/domain"
	"github.com/anshk25/formbot/internal/repository/repotest"
)

type testEnv struct {
	store      *repotest.Store
	auth       *AuthService
	users      *UserService
	workspaces *WorkspaceService
	formbots   *FormbotService
}

func newTestEnv() *testEnv {
	store := repotest.NewStore()
	workspaces := NewWorkspaceService(store.WorkspaceRepo(), store.UserRepo())
	return &testEnv{
		store:      store,
		auth:       NewAuthService(store.UserRepo(), testSecret),
		users:      NewUserService(store.UserRepo()),
		workspaces: workspaces,
		formbots:   NewFormbotService(store.FormbotRepo(), workspaces),
	}
}

func (e *testEnv) register(t *testing.T, username, email string) *domain.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username, Email: email, Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestUpdateUsernameRenamesWorkspaceAndFormbots(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	bob := env.register(t, "bob", "bob@example.com")

	_, err := env.formbots.Create(ctx, bob.ID, CreateFormbotInput{
		Name:        "survey",
		WorkspaceID: "bob_workspace",
		FolderName:  domain.DefaultFolder,
		Commands:    []domain.Command{{Type: domain.CommandOutputText, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("create formbot: %v", err)
	}

	if _, err := env.users.Update(ctx, bob.ID, UpdateUserInput{OldUsername: "bob", NewUsername: "rob"}); err != nil {
		t.Fatalf("update user: %v", err)
	}

	old, err := env.store.WorkspaceRepo().GetByName(ctx, "bob_workspace")
	if err != nil {
		t.Fatalf("get old workspace: %v", err)
	}
	if old != nil {
		t.Fatal("old workspace name still resolves")
	}

	renamed, err := env.store.WorkspaceRepo().GetByName(ctx, "rob_workspace")
	if err != nil {
		t.Fatalf("get renamed workspace: %v", err)
	}
	if renamed == nil {
		t.Fatal("renamed workspace not found")
	}
	if len(renamed.Folders) != 1 || renamed.Folders[0] != domain.DefaultFolder {
		t.Fatalf("folders changed by rename: %v", renamed.Folders)
	}

	// formbots reach the workspace through its id, so lookups keyed by the
	// new name find the original data
	fb, err := env.formbots.Get(ctx, bob.ID, "rob_workspace", domain.DefaultFolder, "survey")
	if err != nil {
		t.Fatalf("get formbot via new name: %v", err)
	}
	if fb.Workspace != "rob_workspace" {
		t.Fatalf("formbot workspace = %q, want rob_workspace", fb.Workspace)
	}

	if _, err := env.formbots.Get(ctx, bob.ID, "bob_workspace", domain.DefaultFolder, "survey"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound via old name, got %v", err)
	}
}

func TestUpdateUserConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	bob := env.register(t, "bob", "bob@example.com")
	env.register(t, "carol", "carol@example.com")

	if _, err := env.users.Update(ctx, bob.ID, UpdateUserInput{OldUsername: "bob", NewUsername: "carol"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := env.users.Update(ctx, bob.ID, UpdateUserInput{OldUsername: "bob", NewEmail: "carol@example.com"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := env.users.Update(ctx, bob.ID, UpdateUserInput{OldUsername: "nobody"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserRequiresSelf(t *testing.T) {
	env := newTestEnv()
	env.register(t, "bob", "bob@example.com")

	_, err := env.users.Update(context.Background(), uuid.New(), UpdateUserInput{OldUsername: "bob", NewUsername: "rob"})
	if !errors.Is(err, ErrNotSelf) {
		t.Fatalf("expected ErrNotSelf, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	bob := env.register(t, "bob", "bob@example.com")

	_, err := env.users.Update(ctx, bob.ID, UpdateUserInput{
		OldUsername: "bob", OldPassword: "wrong", NewPassword: "Fresh456",
	})
	if !errors.Is(err, ErrInvalidCreds) {
		t.Fatalf("expected ErrInvalidCreds, got %v", err)
	}

	if _, err := env.users.Update(ctx, bob.ID, UpdateUserInput{
		OldUsername: "bob", OldPassword: "Secret123", NewPassword: "Fresh456",
	}); err != nil {
		t.Fatalf("password update: %v", err)
	}

	if _, err := env.auth.Login(ctx, LoginInput{Email: "bob@example.com", Password: "Fresh456"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := env.auth.Login(ctx, LoginInput{Email: "bob@example.com", Password: "Secret123"}); !errors.Is(err, ErrInvalidCreds) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestUpdateEmailFollowsGrants(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	bob := env.register(t, "bob", "bob@example.com")

	if _, err := env.users.Update(ctx, bob.ID, UpdateUserInput{OldEmail: "bob@example.com", NewEmail: "robert@example.com"}); err != nil {
		t.Fatalf("email update: %v", err)
	}

	ws, err := env.store.WorkspaceRepo().GetByName(ctx, "bob_workspace")
	if err != nil {
		t.Fatalf("get workspace: %v", err)
	}
	if len(ws.SharedWith) != 1 || ws.SharedWith[0].Email != "robert@example.com" {
		t.Fatalf("grant email not refreshed: %+v", ws.SharedWith)
	}
}

func TestLookup(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "bob", "bob@example.com")

	user, err := env.users.Lookup(ctx, "bob", "")
	if err != nil {
		t.Fatalf("lookup by username: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("lookup returned %q", user.Email)
	}

	if _, err := env.users.Lookup(ctx, "", "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
