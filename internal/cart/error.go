package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrNotAuthenticated = errors.New("log in to add items to the cart")
)
