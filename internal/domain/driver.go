package domain

import (
	"regexp"
	"strings"
)

// Driver represents a commercial driver.
type Driver struct {
	ID            int64
	Name          string
	LicenseNumber string
	// CurrentCycleMinutes is the on-duty time already used in the current 70h/8-day cycle.
	CurrentCycleMinutes int
}

// CycleStatus is the answer to the cycle-remaining query.
type CycleStatus struct {
	DriverID         int64
	UsedMinutes      int
	RemainingMinutes int
}

// reLicense is a regex to validate license numbers
var reLicense = regexp.MustCompile(`^[A-Za-z0-9-]{1,50}$`)

// ValidateLicense validates the license number format
func ValidateLicense(s string) bool {
	return reLicense.MatchString(strings.TrimSpace(s))
}
