package core

import "errors"

// Common errors.
var (
	ErrReadOnly            = errors.New("repository is in read-only mode")
	ErrMalformed           = errors.New("malformed knowledge payload")
	ErrEmptyInput          = errors.New("input is empty")
	ErrBusy                = errors.New("session is busy")
	ErrInvalidContribution = errors.New("invalid contribution")
	ErrReplyFailed         = errors.New("reply failed")
	ErrUnknownAdapter      = errors.New("unknown adapter")
)
