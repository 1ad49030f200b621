package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/checkout"
	"github.com/shopfront/backend/internal/domain/shop"
	"github.com/shopfront/backend/internal/infrastructure/logger"
)

// CheckoutHandler handles payment endpoints. Response shapes match
// what the storefront script expects and are not wrapped in the API
// envelope.
type CheckoutHandler struct {
	service *checkout.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type createCheckoutRequest struct {
	Items []shop.CartLine `json:"items"`
}

type capturePayPalRequest struct {
	OrderID string `json:"orderID" binding:"required"`
}

// CreateCheckoutSession handles POST /create-checkout-session
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	url, err := h.service.CreateCheckout(c.Request.Context(), req.Items)
	if err != nil {
		if errors.Is(err, shop.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		var domainErr *shop.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shop.ErrCodeInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": domainErr.Message})
			return
		}
		logger.FromGin(c).Error("Checkout session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe checkout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CapturePayPalOrder handles POST /capture-paypal-order
func (h *CheckoutHandler) CapturePayPalOrder(c *gin.Context) {
	var req capturePayPalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	result, err := h.service.CapturePayPalOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		var domainErr *shop.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shop.ErrCodeInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		logger.FromGin(c).Error("PayPal capture failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	status := http.StatusOK
	if !result.Completed {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"success": result.Completed,
		"details": result.Details,
	})
}
