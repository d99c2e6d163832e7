package handlers

import (
	"math"
	"strings"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
	"hos-trip-planner/internal/service/planner"
)

const maxLocationLen = 100

func (r *tripRequest) validate() fieldErrors {
	errs := fieldErrors{}
	for field, v := range map[string]string{
		"origin":          r.Origin,
		"pickup_location": r.PickupLocation,
		"destination":     r.Destination,
	} {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			errs.add(field, "This field may not be blank.")
		case len(v) > maxLocationLen:
			errs.add(field, "Ensure this field has no more than 100 characters.")
		}
	}
	if r.EstimatedDuration == nil {
		errs.add("estimated_duration", "This field is required.")
	} else if *r.EstimatedDuration < 0 {
		errs.add("estimated_duration", "Ensure this value is greater than or equal to 0.")
	}
	checkPair(errs, "origin", r.OriginLat, r.OriginLong)
	checkPair(errs, "pickup", r.PickupLat, r.PickupLong)
	checkPair(errs, "dropoff", r.DropoffLat, r.DropoffLong)
	return errs
}

func checkPair(errs fieldErrors, prefix string, lat, lon *float64) {
	if (lat == nil) != (lon == nil) {
		errs.add(prefix+"_lat", "Latitude and longitude must be given together.")
		return
	}
	if lat == nil {
		return
	}
	if math.IsNaN(*lat) || *lat < -90 || *lat > 90 {
		errs.add(prefix+"_lat", "Latitude must be between -90 and 90.")
	}
	if math.IsNaN(*lon) || *lon < -180 || *lon > 180 {
		errs.add(prefix+"_long", "Longitude must be between -180 and 180.")
	}
}

func coords(lat, lon *float64) *domain.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *lat, Lon: *lon}
}

func (r *tripRequest) toModel() *domain.Trip {
	t := &domain.Trip{
		Origin:        strings.TrimSpace(r.Origin),
		Pickup:        strings.TrimSpace(r.PickupLocation),
		Destination:   strings.TrimSpace(r.Destination),
		OriginCoords:  coords(r.OriginLat, r.OriginLong),
		PickupCoords:  coords(r.PickupLat, r.PickupLong),
		DropoffCoords: coords(r.DropoffLat, r.DropoffLong),
	}
	if r.EstimatedDuration != nil {
		t.EstimatedDurationMinutes = *r.EstimatedDuration
	}
	return t
}

func (r *driverRequest) usedMinutes() int {
	switch {
	case r.CurrentCycleMinutes != nil:
		return *r.CurrentCycleMinutes
	case r.CurrentCycleHours != nil:
		return *r.CurrentCycleHours
	default:
		return 0
	}
}

func (r *driverRequest) validate() fieldErrors {
	errs := fieldErrors{}
	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs.add("name", "This field may not be blank.")
	case len(name) > maxLocationLen:
		errs.add("name", "Ensure this field has no more than 100 characters.")
	}
	if !domain.ValidateLicense(r.LicenseNumber) {
		errs.add("license_number", "Enter a valid license number.")
	}
	if r.usedMinutes() < 0 {
		errs.add("current_cycle_minutes", "Ensure this value is greater than or equal to 0.")
	}
	return errs
}

func (r *driverRequest) toModel() *domain.Driver {
	return &domain.Driver{
		Name:                strings.TrimSpace(r.Name),
		LicenseNumber:       strings.TrimSpace(r.LicenseNumber),
		CurrentCycleMinutes: r.usedMinutes(),
	}
}

func hours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func fuelStopsToResponse(stops []domain.FuelStop) []fuelStopDTO {
	out := make([]fuelStopDTO, 0, len(stops))
	for _, s := range stops {
		out = append(out, fuelStopDTO{
			Stop:              s.Sequence,
			DistanceFromStart: s.DistanceFromStartMiles,
			Location:          s.Location,
			FuelAmount:        s.FuelGallons,
		})
	}
	return out
}

func resultToResponse(tripID, driverID int64, res planner.Result) planTripResponse {
	plans := make([]dailyPlanDTO, 0, len(res.Plans))
	for _, p := range res.Plans {
		plans = append(plans, dailyPlanDTO{
			Date:         p.Date.Format(dateLayout),
			DrivingHours: hours(p.Driving),
			OnDutyHours:  hours(p.OnDuty),
			OffDutyHours: hours(p.OffDuty),
			Status:       p.Status,
			Errors:       p.Violations,
		})
	}
	coordinates := res.Summary.Coordinates
	if coordinates == nil {
		coordinates = [][2]float64{}
	}
	return planTripResponse{
		TripID:   tripID,
		DriverID: driverID,
		Plans:    plans,
		Summary: tripSummaryDTO{
			TotalDistanceMiles: res.Summary.TotalDistanceMiles,
			TotalDrivingHours:  res.Summary.TotalDrivingHours,
			EstimatedDays:      res.Summary.EstimatedDays,
			FuelStops:          fuelStopsToResponse(res.Summary.FuelStops),
			Coordinates:        coordinates,
		},
		FuelStops: fuelStopsToResponse(res.FuelStops),
	}
}

func logSheetsToResponse(tripID int64, sheets []domain.LogSheet) logSheetsResponse {
	out := make([]logSheetDTO, 0, len(sheets))
	for _, s := range sheets {
		out = append(out, logSheetDTO{
			DriverID:               s.DriverID,
			TripID:                 s.TripID,
			Date:                   s.Date.Format(dateLayout),
			TotalDrivingHours:      hours(s.Driving),
			TotalOnDutyHours:       hours(s.OnDuty),
			TotalOffDutyHours:      hours(s.OffDuty),
			TotalSleeperBerthHours: hours(s.SleeperBerth),
		})
	}
	return logSheetsResponse{TripID: tripID, LogSheets: out}
}

func reportToResponse(r hos.Report) hosReportResponse {
	violations := r.Violations
	if violations == nil {
		violations = []string{}
	}
	return hosReportResponse{
		DriverID:          r.DriverID,
		Date:              r.Date.Format(dateLayout),
		DrivingHours:      hours(r.Driving),
		OnDutyHours:       hours(r.OnDuty),
		HasSufficientRest: r.HasSufficientRest,
		RollingOnDuty:     hours(r.RollingOnDuty),
		CanRestart:        r.CanRestart,
		Compliant:         r.Compliant(),
		Violations:        violations,
	}
}

func (r dutyLogRequest) toModel(driverID int64) (*domain.DutyLogEntry, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	e := &domain.DutyLogEntry{
		DriverID:        driverID,
		Status:          domain.DutyStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		StartTime:       start.UTC(),
		DurationMinutes: r.DurationMinutes,
	}
	if r.Date != "" {
		d, err := parseDate(r.Date)
		if err != nil {
			return nil, err
		}
		e.Date = d
	}
	return e, nil
}
