package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/shop"
)

// TokenIssuer mints signed download tokens for purchased products.
type TokenIssuer interface {
	IssueDownloadToken(productIDs []int, ttl time.Duration) (string, error)
}

// Config holds checkout service settings.
type Config struct {
	// PublicBaseURL is the externally visible origin redirect URLs are
	// built against.
	PublicBaseURL string
	SuccessPath   string
	CancelPath    string

	// AttachDownloadToken appends a signed download token for the
	// purchased products to the success URL.
	AttachDownloadToken bool
	DownloadTokenTTL    time.Duration
}

// Service orchestrates checkout across payment providers.
type Service struct {
	cfg      Config
	provider CheckoutProvider
	capturer OrderCapturer
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewService creates a checkout service. tokens may be nil when
// download tokens are not attached to success URLs.
func NewService(cfg Config, provider CheckoutProvider, capturer OrderCapturer, tokens TokenIssuer, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		provider: provider,
		capturer: capturer,
		tokens:   tokens,
		logger:   logger,
	}
}

// CreateCheckout prices the cart and creates a hosted checkout
// session, returning the payment page URL.
func (s *Service) CreateCheckout(ctx context.Context, lines []shop.CartLine) (string, error) {
	if len(lines) == 0 {
		return "", shop.ErrEmptyCart
	}

	items := make([]LineItem, 0, len(lines))
	ids := make([]int, 0, len(lines))
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return "", shop.NewDomainError(shop.ErrCodeInvalidInput, fmt.Sprintf("cart line %d: %v", i, err))
		}
		items = append(items, LineItem{
			Name:            line.Name,
			UnitAmountCents: minorUnits(line.Price),
			Quantity:        line.Quantity,
		})
		ids = append(ids, line.ID)
	}

	successURL, err := s.buildSuccessURL(ids)
	if err != nil {
		return "", err
	}

	sessionURL, err := s.provider.CreateSession(ctx, &SessionRequest{
		Lines:      items,
		SuccessURL: successURL,
		CancelURL:  s.cfg.PublicBaseURL + s.cfg.CancelPath,
	})
	if err != nil {
		s.logger.Error("Checkout session creation failed",
			zap.Int("lines", len(items)),
			zap.Error(err))
		return "", shop.NewDomainError(shop.ErrCodeProvider, "checkout session creation failed")
	}

	return sessionURL, nil
}

// CapturePayPalOrder captures an approved PayPal order. A declined
// capture is a valid result, not an error.
func (s *Service) CapturePayPalOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, shop.NewDomainError(shop.ErrCodeInvalidInput, "order id is required")
	}

	result, err := s.capturer.CaptureOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("PayPal capture failed",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, shop.NewDomainError(shop.ErrCodeProvider, "order capture failed")
	}
	return result, nil
}

// buildSuccessURL carries the purchased product ids on the success
// redirect so the storefront can offer the matching downloads.
func (s *Service) buildSuccessURL(ids []int) (string, error) {
	u, err := url.Parse(s.cfg.PublicBaseURL + s.cfg.SuccessPath)
	if err != nil {
		return "", shop.NewDomainError(shop.ErrCodeInvalidInput, "invalid success URL")
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}

	q := u.Query()
	q.Set("items", strings.Join(parts, ","))

	if s.cfg.AttachDownloadToken && s.tokens != nil {
		token, err := s.tokens.IssueDownloadToken(ids, s.cfg.DownloadTokenTTL)
		if err != nil {
			return "", fmt.Errorf("issue download token: %w", err)
		}
		q.Set("token", token)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// minorUnits converts a major-unit price to integer cents, rounding
// halves away from zero so 19.995 becomes 2000.
func minorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
