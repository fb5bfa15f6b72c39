package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrTokenNotFound = errors.New("no booking matches access token")

	ErrSlotTaken = errors.New("slot already has a confirmed booking")
)
