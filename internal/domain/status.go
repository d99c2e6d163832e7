package domain

// DutyStatus classifies a logged time interval.
type DutyStatus string

// List of possible duty statuses
const (
	StatusOffDuty          DutyStatus = "OFF"
	StatusSleeperBerth     DutyStatus = "SB"
	StatusDriving          DutyStatus = "D"
	StatusOnDutyNotDriving DutyStatus = "ON"
)

// List of allowed statuses
var allowedStatuses = [...]DutyStatus{
	StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving,
}

// OffDutyStatuses are the statuses that count toward rest periods.
var OffDutyStatuses = []DutyStatus{StatusOffDuty, StatusSleeperBerth}

// OnDutyStatuses are the statuses that count toward on-duty limits.
var OnDutyStatuses = []DutyStatus{StatusDriving, StatusOnDutyNotDriving}

// Valid checks if the DutyStatus is valid
func (s DutyStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsOffDuty reports whether the status counts as rest.
func (s DutyStatus) IsOffDuty() bool {
	return s == StatusOffDuty || s == StatusSleeperBerth
}

// IsOnDuty reports whether the status counts toward on-duty time.
func (s DutyStatus) IsOnDuty() bool {
	return s == StatusDriving || s == StatusOnDutyNotDriving
}

// Label returns the human readable name of the status.
func (s DutyStatus) Label() string {
	switch s {
	case StatusOffDuty:
		return "Off Duty"
	case StatusSleeperBerth:
		return "Sleeper Berth"
	case StatusDriving:
		return "Driving"
	case StatusOnDutyNotDriving:
		return "On Duty Not Driving"
	default:
		return string(s)
	}
}
