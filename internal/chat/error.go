package chat

import "errors"

var (
	ErrEmptyMessage   = errors.New("message text is empty")
	ErrThreadNotFound = errors.New("conversation thread not found")
	ErrThreadReadOnly = errors.New("thread does not accept messages")
)
