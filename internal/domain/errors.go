package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrHoldExpired          = errors.New("hold expired")
	ErrHoldAlreadyConfirmed = errors.New("hold already confirmed")
	ErrCalendarSync         = errors.New("calendar sync failed")
	ErrInvalidInput         = errors.New("invalid input")
)
