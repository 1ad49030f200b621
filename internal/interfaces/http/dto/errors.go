package dto

import (
	"net/http"

	"github.com/shopfront/backend/internal/domain/shop"
)

// GetHTTPStatus maps a domain error code to an HTTP status code
func GetHTTPStatus(code string) int {
	switch code {
	case shop.ErrCodeNotFound:
		return http.StatusNotFound
	case shop.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case shop.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case shop.ErrCodeProvider, shop.ErrCodeAsset:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
