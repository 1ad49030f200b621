package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopfront/backend/internal/domain/shop"
)

// ProductCatalog lists storefront products.
type ProductCatalog interface {
	Products() []shop.Product
}

// CatalogHandler serves the product catalog
type CatalogHandler struct {
	BaseHandler
	catalog ProductCatalog
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog ProductCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	h.Success(c, h.catalog.Products())
}
