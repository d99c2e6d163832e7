//go:generate mockgen -source=contracts.go -destination=compliance_mocks_test.go -package=compliance_test

package compliance

import (
	"context"
	"time"

	"hos-trip-planner/internal/domain"
)

// ViolationEvent is emitted when a recorded entry leaves its day non-compliant.
type ViolationEvent struct {
	DriverID   int64
	Date       time.Time
	Violations []string
	DetectedAt time.Time
}

// ViolationPublisher delivers violation events to downstream consumers.
type ViolationPublisher interface {
	PublishViolation(ctx context.Context, ev ViolationEvent) error
}

// DriverLookup returns nil, nil for an unknown driver.
type DriverLookup interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
}

// TripLookup returns nil, nil for an unknown trip.
type TripLookup interface {
	Get(ctx context.Context, id int64) (*domain.Trip, error)
}

// LogWriter persists duty log entries.
type LogWriter interface {
	Insert(ctx context.Context, e *domain.DutyLogEntry) error
}
