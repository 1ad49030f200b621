// Package geoip looks up approximate visitor locations over an
// ip-api.com style JSON endpoint.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/shopfront/backend/internal/domain/shop"
)

// Client queries an ip-api.com compatible geolocation endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// lookupResponse is the wire shape of a lookup.
type lookupResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	Org        string `json:"org"`
}

// NewClient creates a geolocation client. The timeout bounds each
// lookup so a slow provider never holds up request handling.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup resolves the location of an IP address. Private and loopback
// addresses resolve to an empty location without a network call.
func (c *Client) Lookup(ctx context.Context, ip string) (shop.GeoLocation, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return shop.GeoLocation{}, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return shop.GeoLocation{}, nil
	}

	lookupURL := c.baseURL + "/" + url.PathEscape(ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return shop.GeoLocation{}, fmt.Errorf("geoip: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shop.GeoLocation{}, fmt.Errorf("geoip: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return shop.GeoLocation{}, fmt.Errorf("geoip: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return shop.GeoLocation{}, fmt.Errorf("geoip: lookup failed with status %d", resp.StatusCode)
	}

	var lookup lookupResponse
	if err := json.Unmarshal(body, &lookup); err != nil {
		return shop.GeoLocation{}, fmt.Errorf("geoip: failed to parse response: %w", err)
	}
	if lookup.Status != "success" {
		return shop.GeoLocation{}, fmt.Errorf("geoip: lookup rejected: %s", lookup.Message)
	}

	return shop.GeoLocation{
		Country: lookup.Country,
		Region:  lookup.RegionName,
		City:    lookup.City,
		Org:     lookup.Org,
	}, nil
}
