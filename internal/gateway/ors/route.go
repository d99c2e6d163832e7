package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/logx"
)

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// Route asks the directions endpoint for a route through coords, in order.
// A response without features yields an empty Route and no error.
func (c *Client) Route(ctx context.Context, coords []domain.Coordinates) (_ domain.Route, err error) {
	if len(coords) < 2 {
		return domain.Route{}, fmt.Errorf("route: need at least 2 points, got %d", len(coords))
	}

	started := time.Now()
	defer func() {
		c.logger.Debug("ors directions",
			logx.Duration("took", time.Since(started)),
			logx.Int("points", len(coords)),
			logx.Err(err),
		)
	}()

	body := directionsRequest{Coordinates: make([][2]float64, 0, len(coords))}
	for _, p := range coords {
		body.Coordinates = append(body.Coordinates, p.LonLat())
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Route{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.Route{}, fmt.Errorf("directions: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, fmt.Errorf("decode directions response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return domain.Route{}, nil
	}

	segments := decoded.Features[0].Properties.Segments
	route := domain.Route{Segments: make([]domain.RouteSegment, 0, len(segments))}
	for _, s := range segments {
		route.Segments = append(route.Segments, domain.RouteSegment{
			DistanceMeters:  s.Distance,
			DurationSeconds: s.Duration,
		})
	}
	return route, nil
}
