package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Resource State --
	ErrLineNotFound = errors.New("cart line not found")
)
