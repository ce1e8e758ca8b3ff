package account

import "errors"

var (
	// -- Validation & Input --
	ErrValidation = errors.New("invalid account input")

	// -- Resource State --
	ErrDuplicateAccount = errors.New("account with this email already exists")
	ErrAccountNotFound  = errors.New("account not found")

	// -- Authentication --
	ErrInvalidCredentials = errors.New("invalid email or secret")
)

// MinSecretLen is the minimum accepted secret length at registration.
const MinSecretLen = 6
