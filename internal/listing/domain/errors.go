package domain

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrHostNotFound       = errors.New("host not found")
	ErrForbidden          = errors.New("user not authorized to perform this action")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrRepository         = errors.New("repository failure")
)
