package ors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hos-trip-planner/internal/domain"
)

// ErrNoMatch is returned when the geocoder finds nothing for an address.
var ErrNoMatch = errors.New("ors: no geocode match")

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a free-text address using /geocode/search.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: empty address")
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/geocode/search", nil)
	if err != nil {
		return domain.Coordinates{}, err
	}
	q := req.URL.Query()
	q.Set("text", address)
	q.Set("size", "1")
	if c.country != "" {
		q.Set("boundary.country", c.country)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%q: %w", address, ErrNoMatch)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}
	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
