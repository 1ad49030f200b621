package fulfillment

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/shop"
)

// Catalog resolves products for download mapping.
type Catalog interface {
	Get(id int) (shop.Product, error)
}

// AssetStorage opens stored download assets by key.
type AssetStorage interface {
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
}

// TokenValidator checks signed download tokens and returns the product
// ids the token grants.
type TokenValidator interface {
	ValidateDownloadToken(token string) ([]int, error)
}

// Errors surfaced to the HTTP layer. ErrNotMapped covers both unknown
// products and products without a download; the endpoint does not
// reveal which.
var (
	ErrNotMapped   = shop.NewDomainError(shop.ErrCodeNotFound, "File not found")
	ErrUnavailable = shop.NewDomainError(shop.ErrCodeAsset, "Error downloading file")
)

// Download is an opened asset ready to stream to the client.
type Download struct {
	Filename string
	Size     int64
	Content  io.ReadCloser
}

// Service resolves product downloads against the catalog and opens the
// backing asset.
type Service struct {
	catalog      Catalog
	storage      AssetStorage
	tokens       TokenValidator
	requireToken bool
	logger       *zap.Logger
}

// NewService creates a fulfillment service. tokens may be nil when
// requireToken is false.
func NewService(catalog Catalog, storage AssetStorage, tokens TokenValidator, requireToken bool, logger *zap.Logger) *Service {
	return &Service{
		catalog:      catalog,
		storage:      storage,
		tokens:       tokens,
		requireToken: requireToken,
		logger:       logger,
	}
}

// Resolve maps a product id to its download asset and opens it. When
// token gating is enabled the token must grant the requested product.
func (s *Service) Resolve(ctx context.Context, productID int, token string) (*Download, error) {
	if s.requireToken {
		if err := s.authorize(productID, token); err != nil {
			return nil, err
		}
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, ErrNotMapped
	}
	if !product.HasDownload() {
		return nil, ErrNotMapped
	}

	content, size, err := s.storage.Open(ctx, product.DownloadAsset)
	if err != nil {
		s.logger.Error("Failed to open download asset",
			zap.Int("product_id", productID),
			zap.String("asset", product.DownloadAsset),
			zap.Error(err))
		return nil, ErrUnavailable
	}

	return &Download{
		Filename: product.DownloadAsset,
		Size:     size,
		Content:  content,
	}, nil
}

func (s *Service) authorize(productID int, token string) error {
	if s.tokens == nil || token == "" {
		return shop.ErrUnauthorized
	}
	granted, err := s.tokens.ValidateDownloadToken(token)
	if err != nil {
		return shop.ErrUnauthorized
	}
	for _, id := range granted {
		if id == productID {
			return nil
		}
	}
	return shop.ErrUnauthorized
}
