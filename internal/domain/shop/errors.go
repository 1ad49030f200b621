package shop

// Domain error codes. The HTTP layer maps these to status codes.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeProvider     = "PROVIDER_ERROR"
	ErrCodeAsset        = "ASSET_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrEmptyCart       = NewDomainError(ErrCodeInvalidInput, "Cart is empty")
	ErrUnauthorized    = NewDomainError(ErrCodeUnauthorized, "Not authorized to perform this action")
)
