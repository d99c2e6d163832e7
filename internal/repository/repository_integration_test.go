//go:build integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hos-trip-planner/internal/apperr"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports/logsheettx"
	"hos-trip-planner/internal/repository"
)

type RepositorySuite struct {
	suite.Suite
	drivers   *repository.DriverRepo
	trips     *repository.TripRepo
	logs      *repository.DutyLogRepo
	logSheets *repository.LogSheetRepo
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.drivers = repository.NewDriverRepo(tcPool)
	s.trips = repository.NewTripRepo(tcPool)
	s.logs = repository.NewDutyLogRepo(tcPool)
	s.logSheets = repository.NewLogSheetRepo(tcPool)
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NoError(truncateAll(context.Background()))
}

func (s *RepositorySuite) createDriver(license string) int64 {
	id, err := s.drivers.Upsert(context.Background(), &domain.Driver{
		Name:          "Alex",
		LicenseNumber: license,
	})
	s.Require().NoError(err)
	return id
}

func (s *RepositorySuite) insertLog(driverID int64, date time.Time, status domain.DutyStatus, hour, minutes int) {
	e := &domain.DutyLogEntry{
		DriverID:        driverID,
		Date:            date,
		Status:          status,
		StartTime:       date.Add(time.Duration(hour) * time.Hour),
		DurationMinutes: minutes,
	}
	s.Require().NoError(s.logs.Insert(context.Background(), e))
	s.Require().NotZero(e.ID)
}

func (s *RepositorySuite) TestDriver_UpsertByLicense() {
	ctx := context.Background()

	id, err := s.drivers.Upsert(ctx, &domain.Driver{Name: "Alex", LicenseNumber: "CDL-1", CurrentCycleMinutes: 60})
	s.Require().NoError(err)

	again, err := s.drivers.Upsert(ctx, &domain.Driver{Name: "Alex B", LicenseNumber: "CDL-1", CurrentCycleMinutes: 120})
	s.Require().NoError(err)
	s.Equal(id, again)

	got, err := s.drivers.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Alex B", got.Name)
	s.Equal(120, got.CurrentCycleMinutes)
}

func (s *RepositorySuite) TestDriver_GetMissing() {
	got, err := s.drivers.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *RepositorySuite) TestTrip_CreateAndGet() {
	ctx := context.Background()

	trip := &domain.Trip{
		Origin:                   "Chicago, IL",
		Pickup:                   "Denver, CO",
		Destination:              "Reno, NV",
		EstimatedDurationMinutes: 1200,
		PickupCoords:             &domain.Coordinates{Lat: 39.74, Lon: -104.99},
	}
	id, err := s.trips.Create(ctx, trip)
	s.Require().NoError(err)

	got, err := s.trips.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Denver, CO", got.Pickup)
	s.Equal(1200, got.EstimatedDurationMinutes)
	s.Nil(got.OriginCoords)
	s.Require().NotNil(got.PickupCoords)
	s.InDelta(39.74, got.PickupCoords.Lat, 1e-9)
	s.Nil(got.DropoffCoords)

	missing, err := s.trips.Get(ctx, id+100)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RepositorySuite) TestDutyLog_RangeAndFilter() {
	ctx := context.Background()
	driverID := s.createDriver("CDL-2")

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.insertLog(driverID, day, domain.StatusDriving, 8, 120)
	s.insertLog(driverID, day, domain.StatusOffDuty, 0, 480)
	s.insertLog(driverID, day.AddDate(0, 0, -1), domain.StatusOnDutyNotDriving, 9, 60)
	s.insertLog(driverID, day.AddDate(0, 0, -8), domain.StatusDriving, 9, 60)

	today, err := s.logs.LogsForDate(ctx, driverID, day)
	s.Require().NoError(err)
	s.Require().Len(today, 2)
	s.Equal(domain.StatusOffDuty, today[0].Status, "ordered by start time")
	s.Equal(day, today[0].Date)

	driving, err := s.logs.LogsForDate(ctx, driverID, day, domain.StatusDriving)
	s.Require().NoError(err)
	s.Require().Len(driving, 1)
	s.Equal(120, driving[0].DurationMinutes)

	window, err := s.logs.LogsForRange(ctx, driverID, day.AddDate(0, 0, -7), day, domain.OnDutyStatuses...)
	s.Require().NoError(err)
	s.Len(window, 2)
}

func (s *RepositorySuite) TestDutyLog_UnknownDriver() {
	err := s.logs.Insert(context.Background(), &domain.DutyLogEntry{
		DriverID:  404,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusDriving,
		StartTime: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	})
	s.Require().Error(err)
	s.True(errors.Is(err, apperr.ErrNotFound))
}

func (s *RepositorySuite) TestLogSheet_UpsertInTx() {
	ctx := context.Background()
	driverID := s.createDriver("CDL-3")
	tripID, err := s.trips.Create(ctx, &domain.Trip{Origin: "A", Pickup: "B", Destination: "C"})
	s.Require().NoError(err)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.insertLog(driverID, day, domain.StatusDriving, 8, 120)

	err = s.logSheets.WithTx(ctx, func(tx logsheettx.Repository) error {
		entries, err := tx.LogsForRange(ctx, driverID, day, day)
		if err != nil {
			return err
		}
		s.Len(entries, 1)
		sheet := &domain.LogSheet{DriverID: driverID, TripID: tripID, Date: day, Driving: 2 * time.Hour, OnDuty: 2 * time.Hour}
		if err := tx.UpsertLogSheet(ctx, sheet); err != nil {
			return err
		}
		sheet.Driving = 3 * time.Hour
		return tx.UpsertLogSheet(ctx, sheet)
	})
	s.Require().NoError(err)

	sheets, err := s.logSheets.List(ctx, tripID)
	s.Require().NoError(err)
	s.Require().Len(sheets, 1)
	s.Equal(3*time.Hour, sheets[0].Driving)
	s.Equal(day, sheets[0].Date)
}

func (s *RepositorySuite) TestLogSheet_RollbackOnError() {
	ctx := context.Background()
	driverID := s.createDriver("CDL-4")
	tripID, err := s.trips.Create(ctx, &domain.Trip{Origin: "A", Pickup: "B", Destination: "C"})
	s.Require().NoError(err)

	boom := errors.New("boom")
	err = s.logSheets.WithTx(ctx, func(tx logsheettx.Repository) error {
		s.Require().NoError(tx.UpsertLogSheet(ctx, &domain.LogSheet{
			DriverID: driverID,
			TripID:   tripID,
			Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		}))
		return boom
	})
	s.Require().ErrorIs(err, boom)

	sheets, err := s.logSheets.List(ctx, tripID)
	s.Require().NoError(err)
	s.Empty(sheets)
}
