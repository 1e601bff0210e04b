// Package contractors provides contractor persistence. Contractors are
// soft-deactivated, never deleted, so closed time entries always resolve
// to a valid owner.
package contractors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/dbx"
	"github.com/mpavlovs/punchclock/internal/server/models"
)

// PostgresRepository implements contractor storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contractorColumns = `id, name, email, active, phone, team_id, team_name, time_zone, app_and_os, created_at`

func scanContractor(row interface{ Scan(dest ...any) error }) (*models.Contractor, error) {
	c := &models.Contractor{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Active,
		&c.Phone, &c.TeamID, &c.TeamName, &c.TimeZone, &c.AppAndOS, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a contractor and returns it with the server-assigned ID.
// A duplicate email surfaces as ErrInvalidInput.
func (r *PostgresRepository) Create(ctx context.Context, contractor *models.Contractor) (*models.Contractor, error) {
	query := `
		INSERT INTO contractors (name, email, active, phone, team_id, team_name, time_zone, app_and_os)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		contractor.Name, contractor.Email, contractor.Active,
		contractor.Phone, contractor.TeamID, contractor.TeamName,
		contractor.TimeZone, contractor.AppAndOS,
	).Scan(&contractor.ID, &contractor.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: email already registered", common.ErrInvalidInput)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contractor, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Contractor, error) {
	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE id = $1`

	c, err := scanContractor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Contractor, error) {
	query := `SELECT ` + contractorColumns + ` FROM contractors ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select contractors: %w", err)
	}
	defer rows.Close()

	var result []*models.Contractor
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetActive toggles the soft-deactivation flag. Returns ErrNotFound when
// the contractor does not exist.
func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE contractors SET active = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
