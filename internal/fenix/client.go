// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

/*
client.go - Fenix Spaces API Client

This file implements a REST client for the Tecnico Fenix spaces API.
It provides methods to fetch the space listing, per-space details, and
per-space day schedules.

API Reference: https://fenix.tecnico.ulisboa.pt/tecnico-api/v2
*/

package fenix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tecnicospaces/spacesd/internal/config"
	"github.com/tecnicospaces/spacesd/internal/metrics"
)

// ErrUpstreamUnavailable wraps any transport or status failure talking to
// the Fenix API. Callers match on it to translate failures into 502s.
var ErrUpstreamUnavailable = errors.New("fenix upstream unavailable")

// ClientInterface defines the Fenix API operations. Both Client and
// CircuitBreakerClient implement this interface.
type ClientInterface interface {
	ListSpaces(ctx context.Context) ([]SpaceListing, error)
	GetSpace(ctx context.Context, spaceID string) (*SpaceDetail, error)
	GetSpaceDay(ctx context.Context, spaceID, day string) (*SpaceDay, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// SpaceListing is one entry of the top-level space listing.
type SpaceListing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// SpaceDetail is the per-space detail payload.
type SpaceDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// SpaceDay is the per-space payload returned when a day is requested.
// Only the events are consumed; the rest of the payload is ignored.
type SpaceDay struct {
	Events []Event `json:"events"`
}

// Event is a raw upstream schedule event.
type Event struct {
	Type   string  `json:"type"`
	Title  string  `json:"title"`
	Course *Course `json:"course,omitempty"`
	Period *Period `json:"period,omitempty"`
}

// Course carries the course a LESSON event belongs to.
type Course struct {
	Name string `json:"name"`
}

// Period carries the raw "DD/MM/YYYY HH:MM" bounds of an event.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Client provides access to the Fenix spaces REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Fenix API client.
func NewClient(cfg *config.FenixConfig) *Client {
	// Normalize URL (remove trailing slash)
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ListSpaces retrieves the top-level space listing.
func (c *Client) ListSpaces(ctx context.Context) ([]SpaceListing, error) {
	start := time.Now()
	resp, err := c.doRequest(ctx, "/spaces")
	metrics.UpstreamRequestDuration.WithLabelValues("listing").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: listing request failed: %w", ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("listing", resp)
	}

	var spaces []SpaceListing
	if err := json.NewDecoder(resp.Body).Decode(&spaces); err != nil {
		return nil, fmt.Errorf("%w: failed to decode listing: %w", ErrUpstreamUnavailable, err)
	}

	// A null body decodes into a nil slice. That is not a usable listing;
	// treat it like any other failed fetch so callers keep their old state.
	if spaces == nil {
		return nil, fmt.Errorf("%w: listing returned no usable payload", ErrUpstreamUnavailable)
	}

	return spaces, nil
}

// GetSpace retrieves the detail payload for one space.
func (c *Client) GetSpace(ctx context.Context, spaceID string) (*SpaceDetail, error) {
	start := time.Now()
	resp, err := c.doRequest(ctx, "/spaces/"+url.PathEscape(spaceID))
	metrics.UpstreamRequestDuration.WithLabelValues("detail").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: space %s request failed: %w", ErrUpstreamUnavailable, spaceID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("space "+spaceID, resp)
	}

	var detail SpaceDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("%w: failed to decode space %s: %w", ErrUpstreamUnavailable, spaceID, err)
	}

	return &detail, nil
}

// GetSpaceDay retrieves the event payload for one space on the given day.
// The day is passed through verbatim in DD/MM/YYYY form; an empty day asks
// the upstream for the current day.
func (c *Client) GetSpaceDay(ctx context.Context, spaceID, day string) (*SpaceDay, error) {
	endpoint := "/spaces/" + url.PathEscape(spaceID)
	if day != "" {
		endpoint += "?day=" + url.QueryEscape(day)
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, endpoint)
	metrics.UpstreamRequestDuration.WithLabelValues("day").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: day request for space %s failed: %w", ErrUpstreamUnavailable, spaceID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("day for space "+spaceID, resp)
	}

	var dayPayload SpaceDay
	if err := json.NewDecoder(resp.Body).Decode(&dayPayload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode day for space %s: %w", ErrUpstreamUnavailable, spaceID, err)
	}

	return &dayPayload, nil
}

// doRequest performs a GET request against the Fenix API.
func (c *Client) doRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	reqURL := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// statusError builds an upstream error from a non-200 response, draining a
// bounded amount of the body for context.
func statusError(what string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil || len(body) == 0 {
		return fmt.Errorf("%w: %s returned status %d", ErrUpstreamUnavailable, what, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s returned status %d: %s", ErrUpstreamUnavailable, what, resp.StatusCode, strings.TrimSpace(string(body)))
}
