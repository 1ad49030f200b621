package shop

import "time"

// GeoLocation holds best-effort geolocation fields for a visitor IP.
// All fields may be empty when the lookup fails or is skipped.
type GeoLocation struct {
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
	Org     string `json:"org,omitempty"`
}

// VisitEntry records one inbound request. Entries are immutable once appended
// and are evicted only by the store's capacity bound.
type VisitEntry struct {
	IP        string      `json:"ip"`
	Location  GeoLocation `json:"location"`
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path"`
}
