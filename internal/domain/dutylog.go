package domain

import "time"

// DutyLogEntry is a single logged interval of a driver's day.
type DutyLogEntry struct {
	ID              int64
	DriverID        int64
	Date            time.Time
	Status          DutyStatus
	StartTime       time.Time
	DurationMinutes int
}

// Duration returns the entry length.
func (e DutyLogEntry) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// EndTime returns the computed end of the interval.
func (e DutyLogEntry) EndTime() time.Time {
	return e.StartTime.Add(e.Duration())
}

// DateOf truncates t to a calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LogSheet holds per-date duty totals for a driver on a trip.
type LogSheet struct {
	ID           int64
	DriverID     int64
	TripID       int64
	Date         time.Time
	Driving      time.Duration
	OnDuty       time.Duration // on duty, not driving
	OffDuty      time.Duration
	SleeperBerth time.Duration
}
