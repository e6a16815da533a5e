package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshk25/formbot/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) CreateWithWorkspace(ctx context.Context, user *domain.User, ws *domain.Workspace) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspaces (id, name, owner_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		ws.ID, ws.Name, ws.OwnerID, ws.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, g := range ws.SharedWith {
		_, err = tx.Exec(ctx, `
			INSERT INTO workspace_grants (workspace_id, user_id, access, granted_at)
			VALUES ($1, $2, $3, $4)`,
			ws.ID, g.UserID, g.Access, ws.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	for _, folder := range ws.Folders {
		_, err = tx.Exec(ctx, `
			INSERT INTO workspace_folders (workspace_id, name, added_at)
			VALUES ($1, $2, $3)`,
			ws.ID, folder, ws.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE username = $1", username)
}

func (r *UserRepo) Find(ctx context.Context, username, email string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at FROM users
		WHERE ($1 = '' OR username = $1) AND ($2 = '' OR email = $2)`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, username, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User, oldWorkspaceName, newWorkspaceName string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE users SET username = $1, email = $2, password_hash = $3, updated_at = $4
		WHERE id = $5`,
		user.Username, user.Email, user.PasswordHash, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return err
	}

	if oldWorkspaceName != newWorkspaceName {
		// Formbots and grants reference the workspace by id, so renaming the
		// row is the whole cascade.
		_, err = tx.Exec(ctx, `
			UPDATE workspaces SET name = $1 WHERE name = $2 AND owner_id = $3`,
			newWorkspaceName, oldWorkspaceName, user.ID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &u, err
}
