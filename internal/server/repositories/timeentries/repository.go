package timeentries

import (
	"context"
	"time"

	"github.com/mpavlovs/punchclock/internal/server/models"
)

type Repository interface {
	// CreateOpen starts a new open entry. When the contractor already has
	// one, it fails with ErrAlreadyClockedIn carrying the open entry's ID.
	CreateOpen(ctx context.Context, contractorID string, clockIn time.Time) (*models.TimeEntry, error)
	// Close finalizes an open entry with its computed durations. Closed
	// entries are immutable; closing twice fails with ErrNoOpenSession.
	Close(ctx context.Context, entryID string, clockOut time.Time, productive, idle time.Duration) (*models.TimeEntry, error)
	// AppendEnrichment attaches screenshots and, when non-nil, the system
	// snapshot to an entry. Screenshots are appended in order, never replaced.
	AppendEnrichment(ctx context.Context, entryID string, shots []models.Screenshot, system *models.SystemInfo) error
	FindOpenByContractor(ctx context.Context, contractorID string) (*models.TimeEntry, error)
	GetByID(ctx context.Context, id string) (*models.TimeEntry, error)
	// ListClosedBetween returns closed entries with clock_in in [from, to),
	// ordered by clock_in ascending.
	ListClosedBetween(ctx context.Context, contractorID string, from, to time.Time) ([]*models.TimeEntry, error)
	// ListRecent returns the latest entries regardless of state, newest first.
	ListRecent(ctx context.Context, contractorID string, limit int) ([]*models.TimeEntry, error)
}
