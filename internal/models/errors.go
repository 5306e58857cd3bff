package models

import "errors"

// Validation errors returned by the Validate methods.
var (
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidStake       = errors.New("stake must not be negative")
	ErrInvalidOdds        = errors.New("odds must be at least 1")
	ErrInvalidStatus      = errors.New("invalid bet status")
	ErrInvalidCategory    = errors.New("invalid bet category")
	ErrInvalidReturn      = errors.New("return override must not be negative")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidSource      = errors.New("invalid payment source")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrInvalidBalance     = errors.New("balance must not be negative")
	ErrInvalidPercent     = errors.New("bank percent must be between 0 and 100")
	ErrNegativeSetting    = errors.New("setting must not be negative")
)
