// Package screenshots stores captured screen images outside the structured
// database. Time entries reference images by key only.
package screenshots

import (
	"context"
	"fmt"
	"time"
)

// Store persists screenshot images and resolves URLs clients can fetch
// them from.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	URL(ctx context.Context, key string) (string, error)
}

// Key builds the blob key for one capture. The (contractor, entry, event)
// triple plus the millisecond timestamp keeps keys collision-free even
// when callers append extra captures for the same event.
func Key(contractorID, entryID, event string, takenAt time.Time) string {
	return fmt.Sprintf("%s/%s/%s_%d.png", contractorID, entryID, event, takenAt.UnixMilli())
}
