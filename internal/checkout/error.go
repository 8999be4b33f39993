package checkout

import "errors"

var (
	// -- Preconditions --
	ErrCartEmpty          = errors.New("cart is empty")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)
