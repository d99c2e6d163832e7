package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hos-trip-planner/internal/domain"
)

// TripRepo represents trip repository.
type TripRepo struct{ db *pgxpool.Pool }

// NewTripRepo creates a new TripRepo.
func NewTripRepo(db *pgxpool.Pool) *TripRepo { return &TripRepo{db: db} }

// Create - stores a trip and returns its ID.
func (r *TripRepo) Create(ctx context.Context, t *domain.Trip) (int64, error) {
	oLat, oLon := split(t.OriginCoords)
	pLat, pLon := split(t.PickupCoords)
	dLat, dLon := split(t.DropoffCoords)

	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO trips (
            origin, pickup_location, destination, estimated_duration_minutes,
            origin_lat, origin_lon, pickup_lat, pickup_lon, dropoff_lat, dropoff_lon
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `, t.Origin, t.Pickup, t.Destination, t.EstimatedDurationMinutes,
		oLat, oLon, pLat, pLon, dLat, dLon,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create trip: %w", err)
	}
	return id, nil
}

// Get - returns trip by its ID, nil if absent.
func (r *TripRepo) Get(ctx context.Context, id int64) (*domain.Trip, error) {
	var t domain.Trip
	var oLat, oLon, pLat, pLon, dLat, dLon *float64
	err := r.db.QueryRow(ctx, `
        SELECT id, origin, pickup_location, destination, estimated_duration_minutes,
               origin_lat, origin_lon, pickup_lat, pickup_lon, dropoff_lat, dropoff_lon
        FROM trips
        WHERE id = $1
    `, id).Scan(&t.ID, &t.Origin, &t.Pickup, &t.Destination, &t.EstimatedDurationMinutes,
		&oLat, &oLon, &pLat, &pLon, &dLat, &dLon)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}
	t.OriginCoords = join(oLat, oLon)
	t.PickupCoords = join(pLat, pLon)
	t.DropoffCoords = join(dLat, dLon)
	return &t, nil
}

func split(c *domain.Coordinates) (lat, lon *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lon
}

func join(lat, lon *float64) *domain.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *lat, Lon: *lon}
}
