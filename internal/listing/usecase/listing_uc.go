package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stashspot/backend/internal/listing/domain"
	"github.com/stashspot/backend/internal/platform/logger"
	userdomain "github.com/stashspot/backend/internal/user/domain"
)

// Cache is a read-through cache for single listings. A nil cache disables
// caching.
type Cache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// Publisher emits listing lifecycle events. A nil publisher disables events.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer sends courtesy notifications to hosts. A nil mailer disables them.
type Mailer interface {
	SendListingCreatedEmail(toEmail, listingTitle string) error
}

// ListingUsecase enforces the listing lifecycle: host-only creation,
// owner-or-admin mutation and cascading deletion.
type ListingUsecase struct {
	repo   domain.ListingRepository
	users  userdomain.UserRepository
	cache  Cache
	events Publisher
	mailer Mailer
	logger *logger.Logger
}

func NewListingUsecase(repo domain.ListingRepository, users userdomain.UserRepository, cache Cache, events Publisher, mailer Mailer, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		users:  users,
		cache:  cache,
		events: events,
		mailer: mailer,
		logger: log.Named("ListingUsecase"),
	}
}

// CreateListingInput is the canonical, fully typed create request. String
// encoded numerics from the frontend never reach this type; see
// AdaptFrontendListing.
type CreateListingInput struct {
	Title              string
	Description        string
	SpaceType          domain.SpaceType
	Size               int
	PricePerMonth      int
	Address            string
	City               string
	State              string
	ZipCode            string
	Country            string
	Latitude           *float64
	Longitude          *float64
	Images             []string
	Features           []string
	AccessInstructions string
	AccessType         string
	AvailableFrom      *time.Time
	AvailableTo        *time.Time
	IsActive           bool
}

// UpdateListingInput carries a sparse update: nil fields are left untouched.
type UpdateListingInput struct {
	Title              *string
	Description        *string
	SpaceType          *domain.SpaceType
	Size               *int
	PricePerMonth      *int
	Address            *string
	City               *string
	State              *string
	ZipCode            *string
	Country            *string
	Latitude           *float64
	Longitude          *float64
	Images             []string
	Features           []string
	AccessInstructions *string
	AccessType         *string
	AvailableFrom      *time.Time
	AvailableTo        *time.Time
	IsActive           *bool
}

// CreateListing persists a new listing owned by the acting user. The actor
// must exist and be flagged as a host.
func (uc *ListingUsecase) CreateListing(ctx context.Context, input CreateListingInput, actor userdomain.Principal) (*domain.Listing, error) {
	uc.logger.Info("Creating listing", zap.String("host_id", actor.ID), zap.String("title", input.Title))

	host, err := uc.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, domain.ErrHostNotFound
		}
		return nil, err
	}
	if !host.IsHost {
		uc.logger.Warn("Create rejected: user is not a host", zap.String("user_id", actor.ID))
		return nil, fmt.Errorf("%w: user is not registered as a host", domain.ErrForbidden)
	}

	listing := &domain.Listing{
		ID:                 uuid.NewString(),
		HostID:             host.ID,
		Title:              input.Title,
		Description:        input.Description,
		SpaceType:          input.SpaceType,
		Size:               input.Size,
		PricePerMonth:      input.PricePerMonth,
		Address:            input.Address,
		City:               input.City,
		State:              input.State,
		ZipCode:            input.ZipCode,
		Country:            input.Country,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Images:             input.Images,
		Features:           input.Features,
		AccessInstructions: input.AccessInstructions,
		AccessType:         input.AccessType,
		AvailableFrom:      input.AvailableFrom,
		AvailableTo:        input.AvailableTo,
		IsActive:           input.IsActive,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := domain.Validate(listing); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to create listing", zap.String("host_id", actor.ID), zap.Error(err))
		return nil, err
	}

	uc.cacheSet(ctx, listing)
	uc.publish(ctx, "listing.created", listing)
	if uc.mailer != nil && host.Email != "" {
		if err := uc.mailer.SendListingCreatedEmail(host.Email, listing.Title); err != nil {
			uc.logger.Warn("Failed to send listing-created email", zap.String("listing_id", listing.ID), zap.Error(err))
		}
	}

	uc.logger.Info("Listing created", zap.String("listing_id", listing.ID))
	return listing, nil
}

// UpdateListing applies a sparse update to a listing. Only the owner or an
// admin may mutate it; on any failure no partial mutation is observable.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, id string, patch UpdateListingInput, actor userdomain.Principal) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeMutation(listing, actor); err != nil {
		uc.logger.Warn("Update rejected",
			zap.String("listing_id", id),
			zap.String("owner_id", listing.HostID),
			zap.String("actor_id", actor.ID))
		return nil, err
	}

	updated := *listing
	applyPatch(&updated, patch)
	updated.UpdatedAt = time.Now()

	if err := domain.Validate(&updated); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, &updated); err != nil {
		uc.logger.Error("Failed to update listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}

	uc.cacheDrop(ctx, id)
	uc.cacheSet(ctx, &updated)
	uc.publish(ctx, "listing.updated", &updated)

	uc.logger.Info("Listing updated", zap.String("listing_id", id), zap.String("actor_id", actor.ID))
	return &updated, nil
}

// DeleteListing removes a listing and cascades removal of its dependent
// bookings and reviews. Only the owner or an admin may delete it.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, id string, actor userdomain.Principal) error {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeMutation(listing, actor); err != nil {
		uc.logger.Warn("Delete rejected",
			zap.String("listing_id", id),
			zap.String("owner_id", listing.HostID),
			zap.String("actor_id", actor.ID))
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("%w: delete cascade failed: %v", domain.ErrRepository, err)
	}

	uc.cacheDrop(ctx, id)
	uc.publish(ctx, "listing.deleted", listing)

	uc.logger.Info("Listing deleted", zap.String("listing_id", id), zap.String("actor_id", actor.ID))
	return nil
}

// GetListingByID fetches a single listing, preferring the cache.
func (uc *ListingUsecase) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetListing(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cacheSet(ctx, listing)
	return listing, nil
}

// SearchListings runs the filter query. Read-only; only active listings are
// returned, ordered by ascending distance when a geo filter is present.
func (uc *ListingUsecase) SearchListings(ctx context.Context, filter domain.Filter, page domain.Page) ([]*domain.Listing, error) {
	return uc.repo.FindByFilter(ctx, filter, page.Normalize())
}

// GetListingsByHost returns the active listings owned by one host.
func (uc *ListingUsecase) GetListingsByHost(ctx context.Context, hostID string) ([]*domain.Listing, error) {
	return uc.repo.FindByHost(ctx, hostID)
}

// authorizeMutation applies the owner-or-admin rule shared by Update and Delete.
func authorizeMutation(listing *domain.Listing, actor userdomain.Principal) error {
	if listing.HostID != actor.ID && !actor.IsAdmin {
		return fmt.Errorf("%w: only the owner or an admin may modify this listing", domain.ErrForbidden)
	}
	return nil
}

func applyPatch(l *domain.Listing, patch UpdateListingInput) {
	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.SpaceType != nil {
		l.SpaceType = *patch.SpaceType
	}
	if patch.Size != nil {
		l.Size = *patch.Size
	}
	if patch.PricePerMonth != nil {
		l.PricePerMonth = *patch.PricePerMonth
	}
	if patch.Address != nil {
		l.Address = *patch.Address
	}
	if patch.City != nil {
		l.City = *patch.City
	}
	if patch.State != nil {
		l.State = *patch.State
	}
	if patch.ZipCode != nil {
		l.ZipCode = *patch.ZipCode
	}
	if patch.Country != nil {
		l.Country = *patch.Country
	}
	if patch.Latitude != nil {
		l.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		l.Longitude = patch.Longitude
	}
	if patch.Images != nil {
		l.Images = patch.Images
	}
	if patch.Features != nil {
		l.Features = patch.Features
	}
	if patch.AccessInstructions != nil {
		l.AccessInstructions = *patch.AccessInstructions
	}
	if patch.AccessType != nil {
		l.AccessType = *patch.AccessType
	}
	if patch.AvailableFrom != nil {
		l.AvailableFrom = patch.AvailableFrom
	}
	if patch.AvailableTo != nil {
		l.AvailableTo = patch.AvailableTo
	}
	if patch.IsActive != nil {
		l.IsActive = *patch.IsActive
	}
}

func (uc *ListingUsecase) cacheSet(ctx context.Context, listing *domain.Listing) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetListing(ctx, listing); err != nil {
		uc.logger.Warn("Failed to cache listing", zap.String("listing_id", listing.ID), zap.Error(err))
	}
}

func (uc *ListingUsecase) cacheDrop(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("Failed to invalidate cached listing", zap.String("listing_id", id), zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, listing *domain.Listing) {
	if uc.events == nil {
		return
	}
	eventData := map[string]interface{}{
		"listing_id": listing.ID,
		"host_id":    listing.HostID,
		"space_type": string(listing.SpaceType),
		"city":       listing.City,
		"is_active":  listing.IsActive,
	}
	if err := uc.events.Publish(ctx, subject, eventData); err != nil {
		// Non-critical: the mutation is committed, only the event is lost.
		uc.logger.Warn("Failed to publish listing event", zap.String("subject", subject), zap.String("listing_id", listing.ID), zap.Error(err))
	}
}
