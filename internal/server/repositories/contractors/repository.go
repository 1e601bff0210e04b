package contractors

import (
	"context"

	"github.com/mpavlovs/punchclock/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, contractor *models.Contractor) (*models.Contractor, error)
	GetByID(ctx context.Context, id string) (*models.Contractor, error)
	List(ctx context.Context) ([]*models.Contractor, error)
	SetActive(ctx context.Context, id string, active bool) error
}
