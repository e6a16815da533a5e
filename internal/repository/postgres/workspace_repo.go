package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshk25/formbot/internal/domain"
)

type WorkspaceRepo struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepo(pool *pgxpool.Pool) *WorkspaceRepo {
	return &WorkspaceRepo{pool: pool}
}

func (r *WorkspaceRepo) GetByName(ctx context.Context, name string) (*domain.Workspace, error) {
	var ws domain.Workspace
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at FROM workspaces WHERE name = $1`, name,
	).Scan(&ws.ID, &ws.Name, &ws.OwnerID, &ws.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.load(ctx, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkspaceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.owner_id, w.created_at
		FROM workspaces w
		INNER JOIN workspace_grants g ON w.id = g.workspace_id
		WHERE g.user_id = $1
		ORDER BY w.created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.OwnerID, &ws.CreatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workspaces {
		if err := r.load(ctx, &workspaces[i]); err != nil {
			return nil, err
		}
	}
	return workspaces, nil
}

func (r *WorkspaceRepo) GetGrant(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Grant, error) {
	query := `
		SELECT g.user_id, u.email, g.access
		FROM workspace_grants g
		JOIN users u ON u.id = g.user_id
		WHERE g.workspace_id = $1 AND g.user_id = $2`

	var g domain.Grant
	err := r.pool.QueryRow(ctx, query, workspaceID, userID).Scan(&g.UserID, &g.Email, &g.Access)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &g, err
}

func (r *WorkspaceRepo) AddGrants(ctx context.Context, workspaceID uuid.UUID, grants []domain.Grant) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, g := range grants {
		_, err := tx.Exec(ctx, `
			INSERT INTO workspace_grants (workspace_id, user_id, access, granted_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (workspace_id, user_id) DO NOTHING`,
			workspaceID, g.UserID, g.Access, now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *WorkspaceRepo) AddFolder(ctx context.Context, workspaceID uuid.UUID, name string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO workspace_folders (workspace_id, name, added_at)
		VALUES ($1, $2, $3)`,
		workspaceID, name, time.Now(),
	)
	return err
}

func (r *WorkspaceRepo) RemoveFolder(ctx context.Context, workspaceID uuid.UUID, name string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM workspace_folders WHERE workspace_id = $1 AND name = $2`,
		workspaceID, name,
	)
	if err != nil {
		return err
	}

	// Formbots never outlive their folder.
	_, err = tx.Exec(ctx,
		`DELETE FROM formbots WHERE workspace_id = $1 AND folder_name = $2`,
		workspaceID, name,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// load fills SharedWith and Folders for a scanned workspace row.
func (r *WorkspaceRepo) load(ctx context.Context, ws *domain.Workspace) error {
	rows, err := r.pool.Query(ctx, `
		SELECT g.user_id, u.email, g.access
		FROM workspace_grants g
		JOIN users u ON u.id = g.user_id
		WHERE g.workspace_id = $1
		ORDER BY g.granted_at`, ws.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	ws.SharedWith = []domain.Grant{}
	for rows.Next() {
		var g domain.Grant
		if err := rows.Scan(&g.UserID, &g.Email, &g.Access); err != nil {
			return err
		}
		ws.SharedWith = append(ws.SharedWith, g)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	frows, err := r.pool.Query(ctx, `
		SELECT name FROM workspace_folders WHERE workspace_id = $1 ORDER BY added_at`, ws.ID)
	if err != nil {
		return err
	}
	defer frows.Close()

	ws.Folders = []string{}
	for frows.Next() {
		var name string
		if err := frows.Scan(&name); err != nil {
			return err
		}
		ws.Folders = append(ws.Folders, name)
	}
	return frows.Err()
}
