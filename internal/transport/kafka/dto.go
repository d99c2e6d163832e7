package kafka

import (
	"fmt"
	"strings"
	"time"

	"hos-trip-planner/internal/domain"
)

const dateLayout = "2006-01-02"

// DutyLogDTO is the wire form of a duty-log event on the ingestion topic.
type DutyLogDTO struct {
	DriverID        int64     `json:"driver_id"`
	Date            string    `json:"date,omitempty"` // YYYY-MM-DD, defaults to the start date
	Status          string    `json:"status"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// ToDomain converts DutyLogDTO to a duty log entry. Status and range checks
// are left to the compliance service.
func ToDomain(dto DutyLogDTO) (domain.DutyLogEntry, error) {
	e := domain.DutyLogEntry{
		DriverID:        dto.DriverID,
		Status:          domain.DutyStatus(strings.ToUpper(strings.TrimSpace(dto.Status))),
		StartTime:       dto.StartTime.UTC(),
		DurationMinutes: dto.DurationMinutes,
	}
	if d := strings.TrimSpace(dto.Date); d != "" {
		date, err := time.ParseInLocation(dateLayout, d, time.UTC)
		if err != nil {
			return domain.DutyLogEntry{}, fmt.Errorf("date %q: %w", d, err)
		}
		e.Date = date
	}
	return e, nil
}

// ViolationDTO is the wire form of a published HOS violation.
type ViolationDTO struct {
	ID         string    `json:"id"`
	DriverID   int64     `json:"driver_id"`
	Date       string    `json:"date"`
	Violations []string  `json:"violations"`
	DetectedAt time.Time `json:"detected_at"`
}
