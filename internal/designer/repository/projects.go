package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"house-designer/internal/common/apierr"
	"house-designer/internal/designer/models"
)

// ============================================================
// Projects
// ============================================================

type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, owner_id, title, description, created_at, updated_at`

func (r *ProjectRepo) Add(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	ts := now()
	p.CreatedAt, p.UpdatedAt = ts, ts

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO projects (`+projectColumns+`)
        VALUES (?, ?, ?, ?, ?, ?)
    `, p.ID, p.OwnerID, p.Title, p.Description, formatTime(ts), formatTime(ts))
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("project")
	}
	return p, err
}

func (r *ProjectRepo) GetAll(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	where, args := whereClause("owner_id", filter.OwnerID)
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects`+where+` ORDER BY created_at DESC, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = now()
	res, err := r.db.ExecContext(ctx, `
        UPDATE projects SET title = ?, description = ?, updated_at = ?
        WHERE id = ?
    `, p.Title, p.Description, formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("project")
	}
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("project")
	}
	return nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
