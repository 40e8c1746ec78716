package order

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrIncompleteInventory = errors.New("inventory incomplete for dates")
	ErrInvalidState        = errors.New("invalid order state")
)
