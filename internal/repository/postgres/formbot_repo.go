package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshk25/formbot/internal/domain"
)

type FormbotRepo struct {
	pool *pgxpool.Pool
}

func NewFormbotRepo(pool *pgxpool.Pool) *FormbotRepo {
	return &FormbotRepo{pool: pool}
}

const formbotColumns = `
	f.id, f.name, w.name, f.folder_name, f.commands, f.opened, f.filled_forms, f.created_at, f.updated_at`

func (r *FormbotRepo) Create(ctx context.Context, fb *domain.Formbot) error {
	commands, filledForms, err := marshalFormbot(fb)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO formbots (id, workspace_id, folder_name, name, commands, opened, filled_forms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		fb.ID, fb.WorkspaceID, fb.FolderName, fb.Name, commands, fb.Opened, filledForms, fb.CreatedAt, fb.UpdatedAt,
	)
	return err
}

func (r *FormbotRepo) GetByKey(ctx context.Context, workspaceID uuid.UUID, folderName, name string) (*domain.Formbot, error) {
	query := `
		SELECT ` + formbotColumns + `
		FROM formbots f
		JOIN workspaces w ON w.id = f.workspace_id
		WHERE f.workspace_id = $1 AND f.folder_name = $2 AND f.name = $3`

	fb, err := r.scanFormbot(r.pool.QueryRow(ctx, query, workspaceID, folderName, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	fb.WorkspaceID = workspaceID
	return fb, nil
}

func (r *FormbotRepo) ListByFolder(ctx context.Context, workspaceID uuid.UUID, folderName string) ([]domain.Formbot, error) {
	query := `
		SELECT ` + formbotColumns + `
		FROM formbots f
		JOIN workspaces w ON w.id = f.workspace_id
		WHERE f.workspace_id = $1 AND f.folder_name = $2
		ORDER BY f.created_at`

	rows, err := r.pool.Query(ctx, query, workspaceID, folderName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formbots []domain.Formbot
	for rows.Next() {
		fb, err := r.scanFormbot(rows)
		if err != nil {
			return nil, err
		}
		fb.WorkspaceID = workspaceID
		formbots = append(formbots, *fb)
	}
	return formbots, rows.Err()
}

func (r *FormbotRepo) Update(ctx context.Context, fb *domain.Formbot) error {
	commands, filledForms, err := marshalFormbot(fb)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		UPDATE formbots SET name = $1, commands = $2, opened = $3, filled_forms = $4, updated_at = $5
		WHERE id = $6`,
		fb.Name, commands, fb.Opened, filledForms, fb.UpdatedAt, fb.ID,
	)
	return err
}

func (r *FormbotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM formbots WHERE id = $1`, id)
	return err
}

func (r *FormbotRepo) scanFormbot(row pgx.Row) (*domain.Formbot, error) {
	var fb domain.Formbot
	var commands, filledForms []byte
	err := row.Scan(
		&fb.ID, &fb.Name, &fb.Workspace, &fb.FolderName,
		&commands, &fb.Opened, &filledForms,
		&fb.CreatedAt, &fb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(commands, &fb.Commands); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(filledForms, &fb.FilledForms); err != nil {
		return nil, err
	}
	return &fb, nil
}

// marshalFormbot encodes the jsonb columns; nil slices become empty JSON
// arrays so the wire format never shows null.
func marshalFormbot(fb *domain.Formbot) ([]byte, []byte, error) {
	if fb.Commands == nil {
		fb.Commands = []domain.Command{}
	}
	if fb.FilledForms == nil {
		fb.FilledForms = [][]string{}
	}

	commands, err := json.Marshal(fb.Commands)
	if err != nil {
		return nil, nil, err
	}
	filledForms, err := json.Marshal(fb.FilledForms)
	if err != nil {
		return nil, nil, err
	}
	return commands, filledForms, nil
}
