package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/anshk25/formbot/internal/domain"
)

func TestCreateFormbotScopedUniqueness(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")

	fb, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
		Name: "survey", WorkspaceID: "alice_workspace", FolderName: "root",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if fb.Opened != 0 {
		t.Fatalf("opened should default to 0, got %d", fb.Opened)
	}
	if fb.FilledForms == nil || len(fb.FilledForms) != 0 {
		t.Fatalf("filled_forms should default to empty, got %#v", fb.FilledForms)
	}

	if _, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
		Name: "survey", WorkspaceID: "alice_workspace", FolderName: "root",
	}); !errors.Is(err, ErrFormbotExists) {
		t.Fatalf("expected ErrFormbotExists, got %v", err)
	}

	// same name in another folder is fine
	if _, err := env.workspaces.AddFolder(ctx, alice.ID, "alice_workspace", "plans"); err != nil {
		t.Fatalf("add folder: %v", err)
	}
	if _, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
		Name: "survey", WorkspaceID: "alice_workspace", FolderName: "plans",
	}); err != nil {
		t.Fatalf("create in other folder: %v", err)
	}
}

func TestModifyAppendsOneRecordPerCall(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")

	if _, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
		Name: "survey", WorkspaceID: "alice_workspace", FolderName: "root",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := env.formbots.Modify(ctx, alice.ID, "alice_workspace", "root", "survey", ModifyFormbotInput{
			FilledForms: []string{"a", "b"},
		}); err != nil {
			t.Fatalf("modify %d: %v", i, err)
		}
	}

	fb, err := env.formbots.Get(ctx, alice.ID, "alice_workspace", "root", "survey")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := [][]string{{"a", "b"}, {"a", "b"}}
	if !reflect.DeepEqual(fb.FilledForms, want) {
		t.Fatalf("filled_forms = %#v, want %#v", fb.FilledForms, want)
	}
}

func TestModifyPartialUpdate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")

	commands := []domain.Command{
		{Type: domain.CommandOutputText, Content: "Welcome"},
		{Type: domain.CommandInputText, Content: "Your name?"},
	}
	if _, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
		Name: "survey", WorkspaceID: "alice_workspace", FolderName: "root", Commands: commands,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	opened := 5
	fb, err := env.formbots.Modify(ctx, alice.ID, "alice_workspace", "root", "survey", ModifyFormbotInput{
		Opened: &opened,
	})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if fb.Opened != 5 {
		t.Fatalf("opened = %d, want 5", fb.Opened)
	}
	if fb.Name != "survey" {
		t.Fatalf("name changed unexpectedly: %q", fb.Name)
	}
	if !reflect.DeepEqual(fb.Commands, commands) {
		t.Fatalf("commands changed unexpectedly: %#v", fb.Commands)
	}

	// zero opened is a valid explicit value
	zero := 0
	fb, err = env.formbots.Modify(ctx, alice.ID, "alice_workspace", "root", "survey", ModifyFormbotInput{
		Opened: &zero,
	})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if fb.Opened != 0 {
		t.Fatalf("opened = %d, want 0", fb.Opened)
	}
}

func TestModifyRenameConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")

	for _, name := range []string{"survey", "quiz"} {
		if _, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
			Name: name, WorkspaceID: "alice_workspace", FolderName: "root",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	_, err := env.formbots.Modify(ctx, alice.ID, "alice_workspace", "root", "quiz", ModifyFormbotInput{Name: "survey"})
	if !errors.Is(err, ErrFormbotExists) {
		t.Fatalf("expected ErrFormbotExists, got %v", err)
	}
}

func TestListEmptyFolderIsAnError(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")

	_, err := env.formbots.List(ctx, alice.ID, "alice_workspace", "root")
	if !errors.Is(err, ErrNoFormbots) {
		t.Fatalf("expected ErrNoFormbots, got %v", err)
	}
}

func TestDeleteFormbot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")

	if _, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
		Name: "survey", WorkspaceID: "alice_workspace", FolderName: "root",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.formbots.Delete(ctx, alice.ID, "alice_workspace", "root", "survey"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.formbots.Delete(ctx, alice.ID, "alice_workspace", "root", "survey"); !errors.Is(err, ErrFormbotNotFound) {
		t.Fatalf("expected ErrFormbotNotFound, got %v", err)
	}
}

func TestFormbotAccessControl(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com")
	carol := env.register(t, "carol", "carol@example.com")

	if _, err := env.formbots.Create(ctx, alice.ID, CreateFormbotInput{
		Name: "survey", WorkspaceID: "alice_workspace", FolderName: "root",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// no grant at all
	if _, err := env.formbots.Get(ctx, carol.ID, "alice_workspace", "root", "survey"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}

	if _, err := env.workspaces.Share(ctx, alice.ID, "alice_workspace", []domain.Grant{
		{Email: "carol@example.com", Access: domain.AccessView},
	}); err != nil {
		t.Fatalf("share: %v", err)
	}

	// view grant reads but cannot mutate
	if _, err := env.formbots.Get(ctx, carol.ID, "alice_workspace", "root", "survey"); err != nil {
		t.Fatalf("view read: %v", err)
	}
	if err := env.formbots.Delete(ctx, carol.ID, "alice_workspace", "root", "survey"); !errors.Is(err, ErrViewOnly) {
		t.Fatalf("expected ErrViewOnly, got %v", err)
	}
}
