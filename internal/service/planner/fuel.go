package planner

import (
	"fmt"

	"hos-trip-planner/internal/domain"
)

const (
	metersPerMile      = 1609.34
	fuelIntervalMiles  = 1000
	fuelPerStopGallons = 200
)

// FuelStops places one stop per full 1000 miles of a route longer than 1000 miles.
func FuelStops(totalMiles float64) []domain.FuelStop {
	stops := []domain.FuelStop{}
	if totalMiles <= fuelIntervalMiles {
		return stops
	}
	n := int(totalMiles / fuelIntervalMiles)
	for i := 1; i <= n; i++ {
		miles := i * fuelIntervalMiles
		stops = append(stops, domain.FuelStop{
			Sequence:               i,
			DistanceFromStartMiles: float64(miles),
			Location:               fmt.Sprintf("Fuel Stop %d (approx %d miles)", i, miles),
			FuelGallons:            fuelPerStopGallons,
		})
	}
	return stops
}
