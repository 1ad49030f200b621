package checkout

import (
	"context"
	"encoding/json"
)

// LineItem is one priced cart line ready for a payment provider.
type LineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int64
}

// SessionRequest describes a hosted checkout session to create.
type SessionRequest struct {
	Lines      []LineItem
	SuccessURL string
	CancelURL  string
}

// CheckoutProvider creates hosted checkout sessions.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req *SessionRequest) (url string, err error)
}

// CaptureResult is the outcome of capturing an approved order.
// Details carries the provider's raw response body for the client.
type CaptureResult struct {
	OrderID   string
	Status    string
	Completed bool
	Details   json.RawMessage
}

// OrderCapturer captures approved orders with a payment provider.
type OrderCapturer interface {
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}
