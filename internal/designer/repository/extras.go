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
// Extras
// ============================================================

type ExtrasRepo struct {
	db *sql.DB
}

func NewExtrasRepo(db *sql.DB) *ExtrasRepo {
	return &ExtrasRepo{db: db}
}

const extrasColumns = `id, house_specifications_id, doors, windows, created_at, updated_at`

func encodeOpenings(e *models.Extras) (string, string, error) {
	doors, windows := e.Doors, e.Windows
	if doors == nil {
		doors = []models.Door{}
	}
	if windows == nil {
		windows = []models.Window{}
	}
	d, err := encodeJSON(doors)
	if err != nil {
		return "", "", err
	}
	w, err := encodeJSON(windows)
	if err != nil {
		return "", "", err
	}
	return d, w, nil
}

func (r *ExtrasRepo) Add(ctx context.Context, e *models.Extras) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	ts := now()
	e.CreatedAt, e.UpdatedAt = ts, ts

	doors, windows, err := encodeOpenings(e)
	if err != nil {
		return fmt.Errorf("encode extras: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO extras (`+extrasColumns+`)
        VALUES (?, ?, ?, ?, ?, ?)
    `, e.ID, e.HouseSpecificationsID, doors, windows, formatTime(ts), formatTime(ts))
	if err != nil {
		return fmt.Errorf("insert extras: %w", err)
	}
	return nil
}

func (r *ExtrasRepo) Get(ctx context.Context, filter models.ExtrasFilter) (*models.Extras, error) {
	where, args := whereClause("id", filter.ID, "house_specifications_id", filter.HouseSpecificationsID)
	row := r.db.QueryRowContext(ctx, `SELECT `+extrasColumns+` FROM extras`+where+` ORDER BY created_at, id LIMIT 1`, args...)
	e, err := scanExtras(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("extras")
	}
	return e, err
}

func (r *ExtrasRepo) GetAll(ctx context.Context, filter models.ExtrasFilter) ([]models.Extras, error) {
	where, args := whereClause("id", filter.ID, "house_specifications_id", filter.HouseSpecificationsID)
	rows, err := r.db.QueryContext(ctx, `SELECT `+extrasColumns+` FROM extras`+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Extras{}
	for rows.Next() {
		e, err := scanExtras(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Update заменяет списки дверей и окон целиком.
func (r *ExtrasRepo) Update(ctx context.Context, e *models.Extras) error {
	e.UpdatedAt = now()
	doors, windows, err := encodeOpenings(e)
	if err != nil {
		return fmt.Errorf("encode extras: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
        UPDATE extras SET doors = ?, windows = ?, updated_at = ? WHERE id = ?
    `, doors, windows, formatTime(e.UpdatedAt), e.ID)
	if err != nil {
		return fmt.Errorf("update extras: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("extras")
	}
	return nil
}

func (r *ExtrasRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM extras WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete extras: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("extras")
	}
	return nil
}

func scanExtras(row rowScanner) (*models.Extras, error) {
	var e models.Extras
	var doors, windows, createdAt, updatedAt string
	if err := row.Scan(&e.ID, &e.HouseSpecificationsID, &doors, &windows, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(doors, &e.Doors); err != nil {
		return nil, fmt.Errorf("decode doors: %w", err)
	}
	if err := decodeJSON(windows, &e.Windows); err != nil {
		return nil, fmt.Errorf("decode windows: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}
