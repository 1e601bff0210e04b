// Package repomanager provides the concrete RepositoryManager backends,
// wiring repository constructors and schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mpavlovs/punchclock/internal/server/migrations"
	"github.com/mpavlovs/punchclock/internal/server/repositories/contractors"
	"github.com/mpavlovs/punchclock/internal/server/repositories/timeentries"
)

// PostgresRepositoryManager owns the database connection and vends
// PostgreSQL-backed repositories.
type PostgresRepositoryManager struct {
	db          *sql.DB
	contractors contractors.Repository
	timeEntries timeentries.Repository
}

// gooseUpContext is a seam for testing RunMigrations.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewPostgresRepositoryManager opens the database, constructs the
// repositories and applies pending migrations.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:          db,
		contractors: contractors.NewPostgresRepository(db),
		timeEntries: timeentries.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Contractors() contractors.Repository {
	return m.contractors
}

func (m *PostgresRepositoryManager) TimeEntries() timeentries.Repository {
	return m.timeEntries
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
