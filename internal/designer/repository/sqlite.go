package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"house-designer/internal/common/database"
)

// ============================================================
// SQLite Repository
// ============================================================

//go:embed migrations/*.sql
var migrations embed.FS

// Init применяет миграции схемы designer.
func Init(ctx context.Context, db *sql.DB) error {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, db, sub); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Open открывает базу по пути и применяет миграции.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := database.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	if err := Init(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// querier — общее подмножество *sql.DB и *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ============================================================
// Helpers
// ============================================================

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func now() time.Time {
	return time.Now().UTC()
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeJSON(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

// whereClause собирает WHERE из пар "колонка = ?" для непустых значений.
func whereClause(pairs ...string) (string, []any) {
	var conds []string
	var args []any
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		conds = append(conds, pairs[i]+" = ?")
		args = append(args, pairs[i+1])
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
