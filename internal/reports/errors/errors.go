package errors

import "errors"

var (
	ErrNotFound  = errors.New("report not found")
	ErrInvalidID = errors.New("invalid report ID")
)
