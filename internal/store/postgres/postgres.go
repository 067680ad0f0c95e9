// Package postgres implements the store.ExportLog interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ExportLog implements store.ExportLog backed by a PostgreSQL database.
type ExportLog struct {
	db *sql.DB
}

// Compile-time check that ExportLog implements store.ExportLog.
var _ store.ExportLog = (*ExportLog)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures a small connection pool, and runs any pending migrations.
func New(ctx context.Context, databaseURL string) (*ExportLog, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One CLI invocation issues a handful of statements.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &ExportLog{db: db}, nil
}

// NewWithDB wraps an open database without running migrations.
func NewWithDB(db *sql.DB) *ExportLog {
	return &ExportLog{db: db}
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "campus_schema_migrations"})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *ExportLog) Close() error {
	return s.db.Close()
}

const exportColumns = "id, view, file_name, destination, row_count, actor, created_at"

func (s *ExportLog) RecordExport(ctx context.Context, rec *model.ExportRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (`+exportColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.View, rec.FileName, rec.Destination, rec.Rows, nullString(rec.Actor), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert export %s: %w", rec.ID, err)
	}
	return nil
}

func (s *ExportLog) GetExport(ctx context.Context, id string) (*model.ExportRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+exportColumns+` FROM exports WHERE id = $1`, id)
	rec, err := scanExport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("export %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get export %s: %w", id, err)
	}
	return rec, nil
}

func (s *ExportLog) ListExports(ctx context.Context, view string, limit int) ([]*model.ExportRecord, error) {
	query := `SELECT ` + exportColumns + ` FROM exports`
	var args []any
	if view != "" {
		args = append(args, view)
		query += fmt.Sprintf(" WHERE view = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var out []*model.ExportRecord
	for rows.Next() {
		rec, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return out, nil
}

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanExport(row scannable) (*model.ExportRecord, error) {
	var (
		rec   model.ExportRecord
		actor sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.View, &rec.FileName, &rec.Destination, &rec.Rows, &actor, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Actor = actor.String
	return &rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
