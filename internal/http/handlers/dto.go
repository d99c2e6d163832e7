package handlers

type planTripRequest struct {
	Trip   *tripRequest   `json:"trip"`
	Driver *driverRequest `json:"driver"`
}

type tripRequest struct {
	Origin            string   `json:"origin"`
	PickupLocation    string   `json:"pickup_location"`
	Destination       string   `json:"destination"`
	EstimatedDuration *int     `json:"estimated_duration"` // minutes
	OriginLat         *float64 `json:"origin_lat,omitempty"`
	OriginLong        *float64 `json:"origin_long,omitempty"`
	PickupLat         *float64 `json:"pickup_lat,omitempty"`
	PickupLong        *float64 `json:"pickup_long,omitempty"`
	DropoffLat        *float64 `json:"dropoff_lat,omitempty"`
	DropoffLong       *float64 `json:"dropoff_long,omitempty"`
}

type driverRequest struct {
	Name                string `json:"name"`
	LicenseNumber       string `json:"license_number"`
	CurrentCycleMinutes *int   `json:"current_cycle_minutes,omitempty"`
	// Older clients send the used minutes under this key.
	CurrentCycleHours *int `json:"current_cycle_hours,omitempty"`
}

type dailyPlanDTO struct {
	Date         string   `json:"date"`
	DrivingHours float64  `json:"driving_hours"`
	OnDutyHours  float64  `json:"on_duty_hours"`
	OffDutyHours float64  `json:"off_duty_hours"`
	Status       string   `json:"status"`
	Errors       []string `json:"errors,omitempty"`
}

type fuelStopDTO struct {
	Stop              int     `json:"stop"`
	DistanceFromStart float64 `json:"distance_from_start"`
	Location          string  `json:"location"`
	FuelAmount        float64 `json:"fuel_amount"`
}

type tripSummaryDTO struct {
	TotalDistanceMiles float64       `json:"total_distance_miles"`
	TotalDrivingHours  float64       `json:"total_driving_hours"`
	EstimatedDays      int           `json:"estimated_days"`
	FuelStops          []fuelStopDTO `json:"fuel_stops"`
	Coordinates        [][2]float64  `json:"coordinates"`
}

type planTripResponse struct {
	TripID    int64          `json:"trip_id"`
	DriverID  int64          `json:"driver_id"`
	Plans     []dailyPlanDTO `json:"plans"`
	Summary   tripSummaryDTO `json:"summary"`
	FuelStops []fuelStopDTO  `json:"fuel_stops"`
}

type planFailedResponse struct {
	Detail string   `json:"detail"`
	Errors []string `json:"errors"`
}

type planViolationsResponse struct {
	Detail         string           `json:"detail"`
	PlanningErrors [][]string       `json:"planning_errors"`
	Result         planTripResponse `json:"result"`
}

type validationResponse struct {
	TripErrors   fieldErrors `json:"trip_errors,omitempty"`
	DriverErrors fieldErrors `json:"driver_errors,omitempty"`
}

type logSheetsRequest struct {
	DriverID int64  `json:"driver_id"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

type logSheetDTO struct {
	DriverID               int64   `json:"driver_id"`
	TripID                 int64   `json:"trip_id"`
	Date                   string  `json:"date"`
	TotalDrivingHours      float64 `json:"total_driving_hours"`
	TotalOnDutyHours       float64 `json:"total_on_duty_hours"`
	TotalOffDutyHours      float64 `json:"total_off_duty_hours"`
	TotalSleeperBerthHours float64 `json:"total_sleeper_berth_hours"`
}

type logSheetsResponse struct {
	TripID    int64         `json:"trip_id"`
	LogSheets []logSheetDTO `json:"log_sheets"`
}

type cycleResponse struct {
	DriverID         int64 `json:"driver_id"`
	UsedMinutes      int   `json:"used_minutes"`
	RemainingMinutes int   `json:"remaining_minutes"`
}

type hosReportResponse struct {
	DriverID          int64    `json:"driver_id"`
	Date              string   `json:"date"`
	DrivingHours      float64  `json:"driving_hours"`
	OnDutyHours       float64  `json:"on_duty_hours"`
	HasSufficientRest bool     `json:"has_10_hour_rest"`
	RollingOnDuty     float64  `json:"rolling_8_day_hours"`
	CanRestart        bool     `json:"can_restart_34_hour"`
	Compliant         bool     `json:"compliant"`
	Violations        []string `json:"violations"`
}

type dutyLogRequest struct {
	Date            string `json:"date,omitempty"`
	Status          string `json:"status"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type dutyLogResponse struct {
	ID          int64             `json:"id"`
	Status      string            `json:"status"`
	StatusLabel string            `json:"status_label"`
	Report      hosReportResponse `json:"report"`
}
