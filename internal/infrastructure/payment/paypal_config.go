package payment

import (
	"fmt"
	"time"
)

const (
	paypalLiveBaseURL    = "https://api-m.paypal.com"
	paypalSandboxBaseURL = "https://api-m.sandbox.paypal.com"
)

// PayPalConfig holds configuration for the PayPal REST API
type PayPalConfig struct {
	// ClientID is the PayPal REST application client id
	ClientID string `json:"client_id" mapstructure:"client_id"`

	// Secret is the PayPal REST application secret
	Secret string `json:"secret" mapstructure:"secret"`

	// Environment selects the API host: "sandbox" or "live"
	Environment string `json:"environment" mapstructure:"environment"`

	// BaseURL overrides the API host. Used in tests; leave empty in
	// normal operation so Environment picks the host.
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// Timeout bounds each API call
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// Validate validates the PayPal configuration
func (c *PayPalConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("paypal: client id is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("paypal: secret is required")
	}
	switch c.Environment {
	case "sandbox", "live":
	default:
		return fmt.Errorf("paypal: environment must be 'sandbox' or 'live', got %q", c.Environment)
	}
	return nil
}

// APIBaseURL returns the API host for the configured environment.
func (c *PayPalConfig) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Environment == "live" {
		return paypalLiveBaseURL
	}
	return paypalSandboxBaseURL
}
