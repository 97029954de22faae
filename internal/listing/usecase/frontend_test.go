package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashspot/backend/internal/listing/domain"
)

func validFrontendListing() FrontendListing {
	return FrontendListing{
		Title:                "Dry garage near downtown",
		SpaceType:            "garage",
		SizeSqFt:             "200",
		PricePerMonthDollars: "150",
		Address:              "123 Main St",
		City:                 "Austin",
		State:                "TX",
		ZipCode:              "78701",
	}
}

func TestAdaptFrontendListing(t *testing.T) {
	t.Run("converts dollars to cents", func(t *testing.T) {
		raw := validFrontendListing()
		raw.PricePerMonthDollars = "149.99"

		input, err := AdaptFrontendListing(raw)
		require.NoError(t, err)
		assert.Equal(t, 14999, input.PricePerMonth)
	})

	t.Run("truncates fractional cents", func(t *testing.T) {
		raw := validFrontendListing()
		raw.PricePerMonthDollars = "149.999"

		input, err := AdaptFrontendListing(raw)
		require.NoError(t, err)
		assert.Equal(t, 14999, input.PricePerMonth)
	})

	t.Run("truncates fractional square feet", func(t *testing.T) {
		raw := validFrontendListing()
		raw.SizeSqFt = "150.9"

		input, err := AdaptFrontendListing(raw)
		require.NoError(t, err)
		assert.Equal(t, 150, input.Size)
	})

	t.Run("defaults country and active flag", func(t *testing.T) {
		input, err := AdaptFrontendListing(validFrontendListing())
		require.NoError(t, err)
		assert.Equal(t, "United States", input.Country)
		assert.True(t, input.IsActive)
	})

	t.Run("keeps explicit country and active flag", func(t *testing.T) {
		raw := validFrontendListing()
		raw.Country = "Canada"
		inactive := false
		raw.IsActive = &inactive

		input, err := AdaptFrontendListing(raw)
		require.NoError(t, err)
		assert.Equal(t, "Canada", input.Country)
		assert.False(t, input.IsActive)
	})

	t.Run("splits and trims features keeping duplicates", func(t *testing.T) {
		raw := validFrontendListing()
		raw.FeaturesInput = " wifi , secure,, 24/7 access ,wifi"

		input, err := AdaptFrontendListing(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"wifi", "secure", "24/7 access", "wifi"}, input.Features)
	})

	t.Run("empty features input means no features", func(t *testing.T) {
		input, err := AdaptFrontendListing(validFrontendListing())
		require.NoError(t, err)
		assert.Nil(t, input.Features)
	})

	t.Run("whitespace only features input means no features", func(t *testing.T) {
		raw := validFrontendListing()
		raw.FeaturesInput = " , , "

		input, err := AdaptFrontendListing(raw)
		require.NoError(t, err)
		assert.Nil(t, input.Features)
	})

	t.Run("non-numeric price is a validation error", func(t *testing.T) {
		raw := validFrontendListing()
		raw.PricePerMonthDollars = "one hundred"

		_, err := AdaptFrontendListing(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidListingData)
	})

	t.Run("negative price is a validation error", func(t *testing.T) {
		raw := validFrontendListing()
		raw.PricePerMonthDollars = "-5"

		_, err := AdaptFrontendListing(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidListingData)
	})

	t.Run("non-finite numerics are validation errors", func(t *testing.T) {
		for _, value := range []string{"NaN", "Inf", "+Inf", "-Inf", "Infinity"} {
			raw := validFrontendListing()
			raw.PricePerMonthDollars = value
			_, err := AdaptFrontendListing(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidListingData, "price %q", value)

			raw = validFrontendListing()
			raw.SizeSqFt = value
			_, err = AdaptFrontendListing(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidListingData, "size %q", value)
		}
	})

	t.Run("non-numeric size is a validation error", func(t *testing.T) {
		raw := validFrontendListing()
		raw.SizeSqFt = "big"

		_, err := AdaptFrontendListing(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidListingData)
	})

	t.Run("each required field is enforced", func(t *testing.T) {
		for _, mutate := range []func(*FrontendListing){
			func(f *FrontendListing) { f.Title = "" },
			func(f *FrontendListing) { f.SpaceType = "  " },
			func(f *FrontendListing) { f.Address = "" },
			func(f *FrontendListing) { f.City = "" },
			func(f *FrontendListing) { f.State = "" },
			func(f *FrontendListing) { f.ZipCode = "" },
		} {
			raw := validFrontendListing()
			mutate(&raw)
			_, err := AdaptFrontendListing(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidListingData)
		}
	})
}
