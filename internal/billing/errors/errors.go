package errors

import "errors"

var (
	ErrNotFound  = errors.New("bill not found")
	ErrInvalidID = errors.New("invalid bill ID")
)
