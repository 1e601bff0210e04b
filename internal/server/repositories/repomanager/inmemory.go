package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpavlovs/punchclock/internal/server/repositories/contractors"
	"github.com/mpavlovs/punchclock/internal/server/repositories/timeentries"
)

// InMemoryRepositoryManager backs the server with map-based repositories.
// Selected when no database DSN is configured; handy for demos and tests.
type InMemoryRepositoryManager struct {
	contractors contractors.Repository
	timeEntries timeentries.Repository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		contractors: contractors.NewInMemoryRepository(),
		timeEntries: timeentries.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) Contractors() contractors.Repository {
	return m.contractors
}

func (m *InMemoryRepositoryManager) TimeEntries() timeentries.Repository {
	return m.timeEntries
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
