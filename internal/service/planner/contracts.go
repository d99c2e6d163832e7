//go:generate mockgen -source=contracts.go -destination=planner_mocks_test.go -package=planner_test

package planner

import (
	"context"

	"hos-trip-planner/internal/domain"
)

// Geocoder resolves a free-text address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Router computes a route through ordered coordinates.
type Router interface {
	Route(ctx context.Context, coords []domain.Coordinates) (domain.Route, error)
}
