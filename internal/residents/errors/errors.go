package errors

import "errors"

var (
	ErrNotFound      = errors.New("resident not found")
	ErrInvalidID     = errors.New("invalid resident ID")
	ErrUsernameTaken = errors.New("username already taken")
)
