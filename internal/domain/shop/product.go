package shop

import "strings"

// Product is a catalog entry. The catalog is read-only and file-sourced;
// products are never created or mutated at runtime.
type Product struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Image      string `json:"image"`
	// DownloadAsset is the filename of the digital asset delivered after
	// purchase. Fulfillment resolves downloads through this field so the
	// catalog stays the single source of truth for the id-to-file mapping.
	DownloadAsset string `json:"download_asset,omitempty"`
}

// Validate checks catalog-load invariants for a product record.
func (p *Product) Validate() error {
	if p.ID <= 0 {
		return NewDomainError(ErrCodeInvalidInput, "product id must be positive")
	}
	if p.Name == "" {
		return NewDomainError(ErrCodeInvalidInput, "product name is required")
	}
	if p.PriceCents < 0 {
		return NewDomainError(ErrCodeInvalidInput, "product price cannot be negative")
	}
	if p.DownloadAsset != "" && !isBareFilename(p.DownloadAsset) {
		return NewDomainError(ErrCodeInvalidInput, "download asset must be a bare filename")
	}
	return nil
}

// HasDownload reports whether the product delivers a digital asset.
func (p *Product) HasDownload() bool {
	return p.DownloadAsset != ""
}

// isBareFilename rejects asset names that could escape the assets directory.
func isBareFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
