package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpavlovs/punchclock/internal/server/repositories/contractors"
	"github.com/mpavlovs/punchclock/internal/server/repositories/timeentries"
)

// RepositoryManager bundles the storage backends behind one seam so the
// services do not care whether they run on PostgreSQL or in memory.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	// Conn exposes the underlying DB handle, nil for the in-memory backend.
	Conn() *sql.DB
	Contractors() contractors.Repository
	TimeEntries() timeentries.Repository
	Close() error
}
