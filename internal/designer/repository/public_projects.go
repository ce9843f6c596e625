package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"house-designer/internal/common/apierr"
	"house-designer/internal/common/database"
	"house-designer/internal/designer/models"
)

// ============================================================
// Public Projects
// ============================================================

type PublicProjectRepo struct {
	db *sql.DB
}

func NewPublicProjectRepo(db *sql.DB) *PublicProjectRepo {
	return &PublicProjectRepo{db: db}
}

const publicProjectColumns = `id, project_id, thumbnail, views, likes, author_name,
        title, description, published_at, updated_at`

// Add публикует проект. Views/Likes всегда начинаются с нуля.
func (r *PublicProjectRepo) Add(ctx context.Context, p *models.PublicProject) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	ts := now()
	p.PublishedAt, p.UpdatedAt = ts, ts
	p.Views, p.Likes = 0, 0

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO public_projects (`+publicProjectColumns+`)
        VALUES (?, ?, ?, 0, 0, ?, ?, ?, ?, ?)
    `, p.ID, p.ProjectID, p.Thumbnail, p.AuthorName, p.Title, p.Description, formatTime(ts), formatTime(ts))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apierr.ErrAlreadyPublic
		}
		return fmt.Errorf("insert public project: %w", err)
	}
	return nil
}

func (r *PublicProjectRepo) GetByID(ctx context.Context, id string) (*models.PublicProject, error) {
	return r.getOne(ctx, r.db, `id = ?`, id)
}

func (r *PublicProjectRepo) GetByProjectID(ctx context.Context, projectID string) (*models.PublicProject, error) {
	return r.getOne(ctx, r.db, `project_id = ?`, projectID)
}

func (r *PublicProjectRepo) getOne(ctx context.Context, q querier, cond string, arg any) (*models.PublicProject, error) {
	row := q.QueryRowContext(ctx, `SELECT `+publicProjectColumns+` FROM public_projects WHERE `+cond, arg)
	p, err := scanPublicProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("public project")
	}
	return p, err
}

func (r *PublicProjectRepo) GetAll(ctx context.Context, filter models.PublicProjectFilter) ([]models.PublicProject, error) {
	where, args := whereClause("author_name", filter.AuthorName)
	if len(filter.ProjectIDs) > 0 {
		cond := "project_id IN (" + placeholders(len(filter.ProjectIDs)) + ")"
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		for _, id := range filter.ProjectIDs {
			args = append(args, id)
		}
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+publicProjectColumns+` FROM public_projects`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PublicProject{}
	for rows.Next() {
		p, err := scanPublicProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update меняет только метаданные публикации; счётчики не трогаются.
func (r *PublicProjectRepo) Update(ctx context.Context, p *models.PublicProject) error {
	p.UpdatedAt = now()
	res, err := r.db.ExecContext(ctx, `
        UPDATE public_projects SET thumbnail = ?, title = ?, description = ?, author_name = ?, updated_at = ?
        WHERE id = ?
    `, p.Thumbnail, p.Title, p.Description, p.AuthorName, formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("update public project: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("public project")
	}
	return nil
}

func (r *PublicProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM public_projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete public project: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("public project")
	}
	return nil
}

func (r *PublicProjectRepo) IsProjectPublic(ctx context.Context, projectID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM public_projects WHERE project_id = ?)`, projectID).Scan(&exists)
	return exists, err
}

// ============================================================
// Engagement
// ============================================================

// ToggleLike ставит или снимает лайк пользователя. Строка лайка и счётчик
// меняются в одной транзакции; уникальный индекс (public_project_id, user_id)
// не даёт вставить второй лайк при гонке.
func (r *PublicProjectRepo) ToggleLike(ctx context.Context, publicProjectID, userID string) (models.LikeResult, error) {
	var result models.LikeResult

	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := r.getOne(ctx, tx, `id = ?`, publicProjectID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
            DELETE FROM public_project_likes WHERE public_project_id = ? AND user_id = ?
        `, publicProjectID, userID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		removed, err := rowsAffected(res)
		if err != nil {
			return err
		}

		if removed > 0 {
			_, err = tx.ExecContext(ctx, `
                UPDATE public_projects SET likes = MAX(likes - 1, 0) WHERE id = ?
            `, publicProjectID)
			if err != nil {
				return fmt.Errorf("decrement likes: %w", err)
			}
			result.IsLiked = false
		} else {
			_, err = tx.ExecContext(ctx, `
                INSERT INTO public_project_likes (id, public_project_id, user_id, liked_at)
                VALUES (?, ?, ?, ?)
            `, uuid.NewString(), publicProjectID, userID, formatTime(now()))
			if err != nil {
				return fmt.Errorf("insert like: %w", err)
			}
			if _, err = tx.ExecContext(ctx, `UPDATE public_projects SET likes = likes + 1 WHERE id = ?`, publicProjectID); err != nil {
				return fmt.Errorf("increment likes: %w", err)
			}
			result.IsLiked = true
		}

		return tx.QueryRowContext(ctx, `SELECT likes FROM public_projects WHERE id = ?`, publicProjectID).Scan(&result.Likes)
	})
	if err != nil {
		return models.LikeResult{}, err
	}
	return result, nil
}

// RecordView увеличивает Views и пишет строку просмотра. Возвращает false,
// если публичного проекта нет.
func (r *PublicProjectRepo) RecordView(ctx context.Context, view models.PublicProjectView) (bool, error) {
	found := false
	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE public_projects SET views = views + 1 WHERE id = ?`, view.PublicProjectID)
		if err != nil {
			return fmt.Errorf("increment views: %w", err)
		}
		n, err := rowsAffected(res)
		if err != nil || n == 0 {
			return err
		}
		found = true

		if view.ID == "" {
			view.ID = uuid.NewString()
		}
		if view.ViewedAt.IsZero() {
			view.ViewedAt = now()
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO public_project_views (id, public_project_id, user_id, ip_address, viewed_at)
            VALUES (?, ?, ?, ?, ?)
        `, view.ID, view.PublicProjectID, nullString(view.UserID), nullString(view.IPAddress), formatTime(view.ViewedAt))
		if err != nil {
			return fmt.Errorf("insert view: %w", err)
		}
		return nil
	})
	return found, err
}

// LikedBy возвращает множество публичных проектов из ids, лайкнутых userID.
func (r *PublicProjectRepo) LikedBy(ctx context.Context, userID string, ids []string) (map[string]bool, error) {
	out := map[string]bool{}
	if userID == "" || len(ids) == 0 {
		return out, nil
	}

	args := []any{userID}
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, `
        SELECT public_project_id FROM public_project_likes
        WHERE user_id = ? AND public_project_id IN (`+placeholders(len(ids))+`)
    `, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func scanPublicProject(row rowScanner) (*models.PublicProject, error) {
	var p models.PublicProject
	var publishedAt, updatedAt string
	if err := row.Scan(&p.ID, &p.ProjectID, &p.Thumbnail, &p.Views, &p.Likes, &p.AuthorName,
		&p.Title, &p.Description, &publishedAt, &updatedAt); err != nil {
		return nil, err
	}
	p.PublishedAt = parseTime(publishedAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
