package seller

import "errors"

var (
	// -- Validation & Input --
	ErrValidation   = errors.New("invalid listing input")
	ErrInvalidPrice = errors.New("listing price is not a valid amount")
)
