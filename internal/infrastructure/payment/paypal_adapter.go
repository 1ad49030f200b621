package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/checkout"
)

const (
	paypalTokenPath   = "/v1/oauth2/token"
	paypalCapturePath = "/v2/checkout/orders/%s/capture"
)

// PayPalAdapter implements order capture against the PayPal REST API.
// Each capture is a two-step exchange: fetch a client-credentials
// access token, then capture the approved order with it.
type PayPalAdapter struct {
	config     *PayPalConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewPayPalAdapter creates a new PayPal adapter
func NewPayPalAdapter(config *PayPalConfig, logger *zap.Logger) (*PayPalAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &PayPalAdapter{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// CaptureOrder captures an approved PayPal order. A response the API
// itself produced, approved or declined, yields a CaptureResult with
// the raw provider body attached; only transport and authentication
// failures return an error.
func (a *PayPalAdapter) CaptureOrder(ctx context.Context, orderID string) (*checkout.CaptureResult, error) {
	token, err := a.fetchAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	captureURL := a.config.APIBaseURL() + fmt.Sprintf(paypalCapturePath, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, nil)
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to create capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal: capture request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to read capture response: %w", err)
	}
	body = bytes.TrimSpace(body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("paypal: capture rejected with status %d: %s", resp.StatusCode, a.describeError(body))
	}
	if resp.StatusCode >= 500 || !isJSONObject(body) {
		return nil, fmt.Errorf("paypal: capture failed with status %d", resp.StatusCode)
	}

	var status paypalCaptureStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("paypal: failed to parse capture response: %w", err)
	}

	result := &checkout.CaptureResult{
		OrderID:   status.ID,
		Status:    status.Status,
		Completed: status.Status == "COMPLETED",
		Details:   json.RawMessage(body),
	}

	a.logger.Info("PayPal capture finished",
		zap.String("order_id", orderID),
		zap.String("status", status.Status),
		zap.Int("http_status", resp.StatusCode))

	return result, nil
}

// fetchAccessToken exchanges the client credentials for a short-lived
// access token.
func (a *PayPalAdapter) fetchAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	tokenURL := a.config.APIBaseURL() + paypalTokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("paypal: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(a.config.ClientID, a.config.Secret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal: token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("paypal: failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal: token request failed with status %d: %s", resp.StatusCode, a.describeError(body))
	}

	var tokenResp paypalTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("paypal: failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("paypal: token response missing access_token")
	}

	return tokenResp.AccessToken, nil
}

func (a *PayPalAdapter) describeError(body []byte) string {
	var errResp paypalErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if desc := errResp.describe(); desc != "" {
			return desc
		}
	}
	return "unrecognized error response"
}
