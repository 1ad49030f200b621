package shop

// CartLine is one line of a client-held cart snapshot. Prices arrive in major
// currency units (dollars.cents) exactly as the client script stores them; the
// checkout service converts to minor units once, just before the provider call.
type CartLine struct {
	ID       int     `json:"id" binding:"required,gt=0"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int64   `json:"quantity" binding:"required,gte=1"`
}

// Validate applies the cart invariants independently of gin binding, so the
// checkout service enforces them no matter how the snapshot reaches it.
func (l *CartLine) Validate() error {
	if l.ID <= 0 {
		return NewDomainError(ErrCodeInvalidInput, "cart line product id must be positive")
	}
	if l.Name == "" {
		return NewDomainError(ErrCodeInvalidInput, "cart line name is required")
	}
	if l.Price < 0 {
		return NewDomainError(ErrCodeInvalidInput, "cart line price cannot be negative")
	}
	if l.Quantity < 1 {
		return NewDomainError(ErrCodeInvalidInput, "cart line quantity must be at least 1")
	}
	return nil
}
