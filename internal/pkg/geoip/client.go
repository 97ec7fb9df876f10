package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Location is an approximate position resolved from an IP address.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Status    string  `json:"status"`
}

// Client resolves IP addresses to approximate coordinates via an external
// lookup service. Lookups are best-effort; callers are expected to proceed
// without coordinates when a lookup fails.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

// Lookup resolves the given IP. Private and malformed addresses come back as
// a non-success status from the upstream service and are reported as errors.
func (c *Client) Lookup(ctx context.Context, ip string) (Location, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, fmt.Errorf("failed to build geoip request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geoip request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geoip service returned status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return Location{}, fmt.Errorf("failed to decode geoip response: %w", err)
	}

	if loc.Status != "" && loc.Status != "success" {
		return Location{}, fmt.Errorf("geoip lookup failed for %s", ip)
	}

	return loc, nil
}
