package search

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("hotel not found")
)
