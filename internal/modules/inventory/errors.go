package inventory

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrForbidden        = errors.New("forbidden")
	ErrNoFieldsProvided = errors.New("no fields provided")
	ErrDuplicateDates   = errors.New("inventory already exists for dates")
	ErrMissingDates     = errors.New("inventory missing for dates")
	ErrUnknownOperation = errors.New("unknown inventory operation")
)
