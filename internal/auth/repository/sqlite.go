package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"house-designer/internal/auth/models"
	"house-designer/internal/common/apierr"
	"house-designer/internal/common/database"
)

// ============================================================
// SQLite Repository
// ============================================================

//go:embed migrations/*.sql
var migrations embed.FS

var ErrLoginTaken = apierr.New(409, "login_taken", errors.New("login or email already registered"))

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context) error {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, r.db, sub); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, login, password_hash, name, email, role, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, u.ID, u.Login, u.PasswordHash, u.Name, u.Email, string(u.Role), u.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrLoginTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.getOne(ctx, `login = ?`, login)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *Repository) getOne(ctx context.Context, cond string, arg any) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password_hash, name, email, role, created_at
        FROM users
        WHERE `+cond, arg)

	var u models.User
	var role, createdAt string
	if err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Name, &u.Email, &role, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.NotFound("user")
		}
		return nil, err
	}
	u.Role = models.Role(role)
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &u, nil
}
