package timeentries

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/server/models"
)

// InMemoryRepository keeps time entries in a map guarded by a single mutex,
// which also serializes the open-session check against the insert. Used
// when the server runs without a database DSN and as a test double.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.TimeEntry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*models.TimeEntry)}
}

func cloneEntry(e *models.TimeEntry) *models.TimeEntry {
	cp := *e
	if e.ClockOut != nil {
		t := *e.ClockOut
		cp.ClockOut = &t
	}
	if e.Screenshots != nil {
		cp.Screenshots = append([]models.Screenshot(nil), e.Screenshots...)
	}
	if e.System != nil {
		sys := *e.System
		cp.System = &sys
	}
	return &cp
}

func (r *InMemoryRepository) openEntryLocked(contractorID string) *models.TimeEntry {
	for _, e := range r.items {
		if e.ContractorID == contractorID && e.ClockOut == nil {
			return e
		}
	}
	return nil
}

func (r *InMemoryRepository) CreateOpen(_ context.Context, contractorID string, clockIn time.Time) (*models.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if open := r.openEntryLocked(contractorID); open != nil {
		return nil, fmt.Errorf("%w: open entry %s", common.ErrAlreadyClockedIn, open.ID)
	}

	entry := &models.TimeEntry{
		ID:           uuid.NewString(),
		ContractorID: contractorID,
		ClockIn:      clockIn,
		CreatedAt:    time.Now().UTC(),
	}
	r.items[entry.ID] = entry
	return cloneEntry(entry), nil
}

func (r *InMemoryRepository) Close(_ context.Context, entryID string, clockOut time.Time, productive, idle time.Duration) (*models.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[entryID]
	if !ok || e.ClockOut != nil {
		return nil, common.ErrNoOpenSession
	}

	t := clockOut
	e.ClockOut = &t
	e.Productive = productive
	e.Idle = idle
	return cloneEntry(e), nil
}

func (r *InMemoryRepository) AppendEnrichment(_ context.Context, entryID string, shots []models.Screenshot, system *models.SystemInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[entryID]
	if !ok {
		return common.ErrNotFound
	}
	e.Screenshots = append(e.Screenshots, shots...)
	if system != nil {
		sys := *system
		e.System = &sys
	}
	return nil
}

func (r *InMemoryRepository) FindOpenByContractor(_ context.Context, contractorID string) (*models.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if open := r.openEntryLocked(contractorID); open != nil {
		return cloneEntry(open), nil
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*models.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneEntry(e), nil
}

func (r *InMemoryRepository) ListClosedBetween(_ context.Context, contractorID string, from, to time.Time) ([]*models.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.TimeEntry
	for _, e := range r.items {
		if e.ContractorID != contractorID || e.ClockOut == nil {
			continue
		}
		if e.ClockIn.Before(from) || !e.ClockIn.Before(to) {
			continue
		}
		result = append(result, cloneEntry(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockIn.Before(result[j].ClockIn) })
	return result, nil
}

func (r *InMemoryRepository) ListRecent(_ context.Context, contractorID string, limit int) ([]*models.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.TimeEntry
	for _, e := range r.items {
		if e.ContractorID == contractorID {
			result = append(result, cloneEntry(e))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockIn.After(result[j].ClockIn) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
