package session

import "errors"

var (
	ErrNotLoggedIn     = errors.New("no active session")
	ErrAlreadyLoggedIn = errors.New("a session is already active")
	ErrNotConfirmed    = errors.New("logout not confirmed")
)
