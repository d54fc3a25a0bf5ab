package domain

import "errors"

// Error taxonomy shared by repos, services and handlers. All failures are
// returned to the caller; nothing here is swallowed or retried.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyApproved   = errors.New("request already approved")
	ErrAlreadyDecided    = errors.New("request already decided")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
)
