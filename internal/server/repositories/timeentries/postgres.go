// Package timeentries provides time entry persistence. The one-open-session
// rule is enforced twice: a SELECT FOR UPDATE inside the create transaction
// for in-order callers, and a partial unique index for writers that race
// past it.
package timeentries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/dbx"
	"github.com/mpavlovs/punchclock/internal/server/models"
)

// PostgresRepository implements time entry storage. It holds *sql.DB rather
// than dbx.DBTX because CreateOpen opens its own transaction.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `id, contractor_id, clock_in, clock_out, productive_ms, idle_ms, screenshots, system_info, created_at`

func scanEntry(row interface{ Scan(dest ...any) error }) (*models.TimeEntry, error) {
	e := &models.TimeEntry{}
	var (
		clockOut     sql.NullTime
		productiveMs int64
		idleMs       int64
		shotsRaw     []byte
		systemRaw    []byte
	)
	err := row.Scan(&e.ID, &e.ContractorID, &e.ClockIn, &clockOut,
		&productiveMs, &idleMs, &shotsRaw, &systemRaw, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if clockOut.Valid {
		t := clockOut.Time
		e.ClockOut = &t
	}
	e.Productive = time.Duration(productiveMs) * time.Millisecond
	e.Idle = time.Duration(idleMs) * time.Millisecond
	if len(shotsRaw) > 0 {
		if err := json.Unmarshal(shotsRaw, &e.Screenshots); err != nil {
			return nil, fmt.Errorf("decode screenshots: %w", err)
		}
	}
	if len(systemRaw) > 0 {
		sys := &models.SystemInfo{}
		if err := json.Unmarshal(systemRaw, sys); err != nil {
			return nil, fmt.Errorf("decode system info: %w", err)
		}
		e.System = sys
	}
	return e, nil
}

func (r *PostgresRepository) CreateOpen(ctx context.Context, contractorID string, clockIn time.Time) (*models.TimeEntry, error) {
	entry := &models.TimeEntry{ContractorID: contractorID, ClockIn: clockIn}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var openID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM time_entries WHERE contractor_id = $1 AND clock_out IS NULL FOR UPDATE`,
			contractorID).Scan(&openID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: open entry %s", common.ErrAlreadyClockedIn, openID)
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("db error: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO time_entries (contractor_id, clock_in) VALUES ($1, $2) RETURNING id, created_at`,
			contractorID, clockIn).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// A concurrent clock-in slipped between our check and insert
			// and won; report the surviving open entry.
			if open, ferr := r.FindOpenByContractor(ctx, contractorID); ferr == nil {
				return nil, fmt.Errorf("%w: open entry %s", common.ErrAlreadyClockedIn, open.ID)
			}
			return nil, common.ErrAlreadyClockedIn
		}
		return nil, err
	}
	return entry, nil
}

func (r *PostgresRepository) Close(ctx context.Context, entryID string, clockOut time.Time, productive, idle time.Duration) (*models.TimeEntry, error) {
	query := `
		UPDATE time_entries
		SET clock_out = $2, productive_ms = $3, idle_ms = $4
		WHERE id = $1 AND clock_out IS NULL
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query,
		entryID, clockOut, productive.Milliseconds(), idle.Milliseconds()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoOpenSession
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) AppendEnrichment(ctx context.Context, entryID string, shots []models.Screenshot, system *models.SystemInfo) error {
	shotsJSON := []byte("[]")
	if len(shots) > 0 {
		b, err := json.Marshal(shots)
		if err != nil {
			return fmt.Errorf("encode screenshots: %w", err)
		}
		shotsJSON = b
	}
	var systemJSON any
	if system != nil {
		b, err := json.Marshal(system)
		if err != nil {
			return fmt.Errorf("encode system info: %w", err)
		}
		systemJSON = b
	}

	query := `
		UPDATE time_entries
		SET screenshots = screenshots || $2::jsonb,
		    system_info = COALESCE($3::jsonb, system_info)
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, entryID, shotsJSON, systemJSON)
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

func (r *PostgresRepository) FindOpenByContractor(ctx context.Context, contractorID string) (*models.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE contractor_id = $1 AND clock_out IS NULL`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, contractorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = $1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) ListClosedBetween(ctx context.Context, contractorID string, from, to time.Time) ([]*models.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE contractor_id = $1 AND clock_out IS NOT NULL AND clock_in >= $2 AND clock_in < $3
		ORDER BY clock_in`

	return r.list(ctx, query, contractorID, from, to)
}

func (r *PostgresRepository) ListRecent(ctx context.Context, contractorID string, limit int) ([]*models.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE contractor_id = $1
		ORDER BY clock_in DESC
		LIMIT $2`

	return r.list(ctx, query, contractorID, limit)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*models.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
