// Package ors is a client for the OpenRouteService geocoding and directions API.
package ors

import (
	"net/http"
	"strings"
	"time"

	"hos-trip-planner/internal/logx"
)

// DefaultBaseURL is the public OpenRouteService endpoint.
const DefaultBaseURL = "https://api.openrouteservice.org"

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	Profile string        // directions profile, e.g. driving-car or driving-hgv
	Country string        // optional geocoding boundary, ISO alpha-2
	Timeout time.Duration // per HTTP request
}

// Client talks to OpenRouteService over HTTP/JSON.
type Client struct {
	baseURL string
	apiKey  string
	profile string
	country string
	session *http.Client
	logger  logx.Logger
}

// NewClient creates a Client. A nil session gets a default http.Client with opts.Timeout.
func NewClient(opts Options, session *http.Client, logger logx.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Profile == "" {
		opts.Profile = "driving-car"
	}
	if session == nil {
		session = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		profile: opts.Profile,
		country: opts.Country,
		session: session,
		logger:  logger,
	}
}
