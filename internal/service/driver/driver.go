package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hos-trip-planner/internal/apperr"
	"hos-trip-planner/internal/domain"
)

const maxNameLen = 100

// Service coordinates driver business logic and orchestrates repository calls.
type Service struct {
	repo             driverRepository
	cycleLimit       time.Duration
	operationTimeout time.Duration
}

// NewService creates and configures a driver Service.
func NewService(r driverRepository, cycleLimit, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, cycleLimit: cycleLimit, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateRegister validates and normalizes a driver before upsert.
func validateRegister(d *domain.Driver) error {
	if d == nil {
		return apperr.ErrInvalid
	}
	d.Name = strings.TrimSpace(d.Name)
	d.LicenseNumber = strings.TrimSpace(d.LicenseNumber)
	if d.Name == "" || len(d.Name) > maxNameLen {
		return fmt.Errorf("name: %w", apperr.ErrInvalid)
	}
	if !domain.ValidateLicense(d.LicenseNumber) {
		return fmt.Errorf("license number: %w", apperr.ErrInvalid)
	}
	if d.CurrentCycleMinutes < 0 {
		return fmt.Errorf("current cycle minutes: %w", apperr.ErrInvalid)
	}
	return nil
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// Register creates the driver or refreshes the one holding the same license.
// The stored ID is written back to d.
func (s *Service) Register(ctx context.Context, d *domain.Driver) (int64, error) {
	if err := validateRegister(d); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	id, err := s.repo.Upsert(ctx, d)
	if err != nil {
		return 0, err
	}
	d.ID = id
	return id, nil
}

// Cycle reports how much of the rolling cycle the driver has used and has left.
func (s *Service) Cycle(ctx context.Context, id int64) (domain.CycleStatus, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return domain.CycleStatus{}, err
	}
	limit := int(s.cycleLimit / time.Minute)
	return domain.CycleStatus{
		DriverID:         d.ID,
		UsedMinutes:      d.CurrentCycleMinutes,
		RemainingMinutes: max(0, limit-d.CurrentCycleMinutes),
	}, nil
}
