package domain

import (
	"fmt"
	"strings"
)

// Validate checks the listing invariants and returns an error wrapping
// ErrInvalidListingData on the first violation. It is invoked explicitly at
// the usecase boundary before any persistence call.
func Validate(l *Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidListingData)
	}
	if !l.SpaceType.Valid() {
		return fmt.Errorf("%w: unknown space type %q", ErrInvalidListingData, l.SpaceType)
	}
	if l.Size <= 0 {
		return fmt.Errorf("%w: size must be a positive number of square feet", ErrInvalidListingData)
	}
	if l.PricePerMonth < 0 {
		return fmt.Errorf("%w: price per month cannot be negative", ErrInvalidListingData)
	}
	if strings.TrimSpace(l.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidListingData)
	}
	if strings.TrimSpace(l.City) == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidListingData)
	}
	if strings.TrimSpace(l.State) == "" {
		return fmt.Errorf("%w: state is required", ErrInvalidListingData)
	}
	if strings.TrimSpace(l.ZipCode) == "" {
		return fmt.Errorf("%w: zip code is required", ErrInvalidListingData)
	}
	if strings.TrimSpace(l.Country) == "" {
		return fmt.Errorf("%w: country is required", ErrInvalidListingData)
	}
	if (l.Latitude == nil) != (l.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be provided together", ErrInvalidListingData)
	}
	if l.AvailableFrom != nil && l.AvailableTo != nil && l.AvailableTo.Before(*l.AvailableFrom) {
		return fmt.Errorf("%w: availability window must satisfy from <= to", ErrInvalidListingData)
	}
	return nil
}
