package driver

import (
	"context"

	"hos-trip-planner/internal/domain"
)

// driverRepository defines storage operations required by the business layer.
type driverRepository interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	Upsert(ctx context.Context, d *domain.Driver) (int64, error)
}
