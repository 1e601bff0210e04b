package contractors

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

// InMemoryRepository keeps contractors in a map. Used when the server runs
// without a database DSN and as a test double.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.Contractor
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*models.Contractor)}
}

func cloneContractor(c *models.Contractor) *models.Contractor {
	cp := *c
	return &cp
}

func (r *InMemoryRepository) Create(_ context.Context, contractor *models.Contractor) (*models.Contractor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == contractor.Email {
			return nil, fmt.Errorf("%w: email already registered", common.ErrInvalidInput)
		}
	}

	contractor.ID = uuid.NewString()
	contractor.CreatedAt = time.Now().UTC()
	r.items[contractor.ID] = cloneContractor(contractor)
	return contractor, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*models.Contractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneContractor(c), nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*models.Contractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Contractor, 0, len(r.items))
	for _, c := range r.items {
		result = append(result, cloneContractor(c))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemoryRepository) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return common.ErrNotFound
	}
	c.Active = active
	return nil
}
