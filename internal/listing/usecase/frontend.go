package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stashspot/backend/internal/listing/domain"
)

// FrontendListing is the loosely typed submission shape produced by the web
// form: numbers arrive as strings and features as one comma-separated string.
type FrontendListing struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	SpaceType            string     `json:"space_type"`
	SizeSqFt             string     `json:"sizeSqFt"`
	PricePerMonthDollars string     `json:"pricePerMonthDollars"`
	Address              string     `json:"address"`
	City                 string     `json:"city"`
	State                string     `json:"state"`
	ZipCode              string     `json:"zip_code"`
	Country              string     `json:"country"`
	Latitude             *float64   `json:"latitude"`
	Longitude            *float64   `json:"longitude"`
	ImageURLs            []string   `json:"imageUrls"`
	FeaturesInput        string     `json:"featuresInput"`
	AccessInstructions   string     `json:"access_instructions"`
	AccessType           string     `json:"access_type"`
	AvailableFrom        *time.Time `json:"available_from"`
	AvailableTo          *time.Time `json:"available_to"`
	IsActive             *bool      `json:"is_active"`
}

// AdaptFrontendListing converts a frontend submission into the canonical
// create request. It is pure and fails with a validation error instead of
// producing a partial result.
func AdaptFrontendListing(raw FrontendListing) (CreateListingInput, error) {
	var input CreateListingInput

	for field, value := range map[string]string{
		"title":      raw.Title,
		"space_type": raw.SpaceType,
		"address":    raw.Address,
		"city":       raw.City,
		"state":      raw.State,
		"zip_code":   raw.ZipCode,
	} {
		if strings.TrimSpace(value) == "" {
			return CreateListingInput{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidListingData, field)
		}
	}

	dollars, err := strconv.ParseFloat(strings.TrimSpace(raw.PricePerMonthDollars), 64)
	if err != nil || !isNonNegativeFinite(dollars) {
		return CreateListingInput{}, fmt.Errorf("%w: price %q is not a non-negative number", domain.ErrInvalidListingData, raw.PricePerMonthDollars)
	}

	sqft, err := strconv.ParseFloat(strings.TrimSpace(raw.SizeSqFt), 64)
	if err != nil || !isNonNegativeFinite(sqft) {
		return CreateListingInput{}, fmt.Errorf("%w: size %q is not a non-negative number", domain.ErrInvalidListingData, raw.SizeSqFt)
	}

	country := raw.Country
	if country == "" {
		country = "United States"
	}
	isActive := true
	if raw.IsActive != nil {
		isActive = *raw.IsActive
	}

	input = CreateListingInput{
		Title:              raw.Title,
		Description:        raw.Description,
		SpaceType:          domain.SpaceType(raw.SpaceType),
		Size:               int(sqft),
		PricePerMonth:      int(dollars * 100),
		Address:            raw.Address,
		City:               raw.City,
		State:              raw.State,
		ZipCode:            raw.ZipCode,
		Country:            country,
		Latitude:           raw.Latitude,
		Longitude:          raw.Longitude,
		Images:             raw.ImageURLs,
		Features:           splitFeatures(raw.FeaturesInput),
		AccessInstructions: raw.AccessInstructions,
		AccessType:         raw.AccessType,
		AvailableFrom:      raw.AvailableFrom,
		AvailableTo:        raw.AvailableTo,
		IsActive:           isActive,
	}
	return input, nil
}

// isNonNegativeFinite guards the float-to-int conversions: ParseFloat accepts
// "NaN" and "Inf", and converting those to int is undefined.
func isNonNegativeFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// splitFeatures turns "wifi, secure, 24/7 access" into a trimmed list,
// dropping empty segments and keeping order without deduplicating.
func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	features := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			features = append(features, f)
		}
	}
	if len(features) == 0 {
		return nil
	}
	return features
}
