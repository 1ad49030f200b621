package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/fulfillment"
	"github.com/shopfront/backend/internal/domain/shop"
	"github.com/shopfront/backend/internal/infrastructure/logger"
)

// DownloadHandler streams purchased digital assets. Errors answer in
// plain text, matching what the storefront links expect.
type DownloadHandler struct {
	service *fulfillment.Service
}

// NewDownloadHandler creates a new DownloadHandler
func NewDownloadHandler(service *fulfillment.Service) *DownloadHandler {
	return &DownloadHandler{service: service}
}

// Download handles GET /download/:productId
func (h *DownloadHandler) Download(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	download, err := h.service.Resolve(c.Request.Context(), productID, c.Query("token"))
	if err != nil {
		switch {
		case errors.Is(err, fulfillment.ErrNotMapped):
			c.String(http.StatusNotFound, "File not found")
		case errors.Is(err, shop.ErrUnauthorized):
			c.String(http.StatusUnauthorized, "Unauthorized")
		default:
			logger.FromGin(c).Error("Download failed",
				zap.Int("product_id", productID),
				zap.Error(err))
			c.String(http.StatusInternalServerError, "Error downloading file")
		}
		return
	}
	defer download.Content.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename="` + download.Filename + `"`,
	}
	c.DataFromReader(http.StatusOK, download.Size, "application/octet-stream", download.Content, extraHeaders)
}
