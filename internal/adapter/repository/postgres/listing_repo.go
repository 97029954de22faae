package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/stashspot/backend/internal/listing/domain"
)

// milesPerDegreeLat approximates one degree of latitude. Used only for the
// bounding-box prefilter; the exact great-circle check runs afterwards.
const milesPerDegreeLat = 69.0

// ListingRepository persists listings in a relational store and implements
// the dynamic filter query.
type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if err := r.db.WithContext(ctx).Create(toListingRecord(listing)).Error; err != nil {
		return translateConstraint(err)
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	rec := toListingRecord(listing)
	// Save writes every column in a single statement, so the merged entity
	// replaces the stored one atomically.
	res := r.db.WithContext(ctx).Save(rec)
	if res.Error != nil {
		return translateConstraint(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Delete removes the listing together with its dependent bookings and
// reviews. The whole cascade runs in one transaction: either everything is
// removed or nothing is.
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&bookingRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&reviewRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&listingRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrListingNotFound
		}
		return nil
	})
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var rec listingRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return toDomainListing(&rec), nil
}

func (r *ListingRepository) FindByHost(ctx context.Context, hostID string) ([]*domain.Listing, error) {
	var records []listingRecord
	err := r.db.WithContext(ctx).
		Where("host_id = ? AND is_active = ?", hostID, true).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainListings(records), nil
}

// FindByFilter composes the search query. Every supplied clause narrows the
// result (AND); the location clause matches city, state, zip or address (OR).
// With a geo filter the database applies a bounding-box prefilter and the
// exact great-circle check plus distance ordering run here, so pagination is
// applied after ordering in both paths.
func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter, page domain.Page) ([]*domain.Listing, error) {
	q := r.db.WithContext(ctx).Model(&listingRecord{}).Where("is_active = ?", true)

	if filter.Location != "" {
		pattern := "%" + strings.ToLower(filter.Location) + "%"
		q = q.Where(
			"LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(zip_code) LIKE ? OR LOWER(address) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.SpaceType != "" {
		q = q.Where("space_type = ?", string(filter.SpaceType))
	}
	if filter.MinPrice != nil {
		q = q.Where("price_per_month >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price_per_month <= ?", *filter.MaxPrice)
	}
	if filter.MinSize != nil {
		q = q.Where("size >= ?", *filter.MinSize)
	}
	if filter.MaxSize != nil {
		q = q.Where("size <= ?", *filter.MaxSize)
	}

	if filter.Geo == nil {
		var records []listingRecord
		err := q.Order("created_at DESC").Offset(page.Skip).Limit(page.Limit).Find(&records).Error
		if err != nil {
			return nil, err
		}
		return toDomainListings(records), nil
	}

	q = applyBoundingBox(q, filter.Geo)

	var records []listingRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(records))
	for i := range records {
		l := toDomainListing(&records[i])
		if l.HasCoordinates() && filter.Geo.Within(*l.Latitude, *l.Longitude) {
			listings = append(listings, l)
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return filter.Geo.DistanceTo(*listings[i].Latitude, *listings[i].Longitude) <
			filter.Geo.DistanceTo(*listings[j].Latitude, *listings[j].Longitude)
	})

	return paginate(listings, page), nil
}

// applyBoundingBox narrows the scan to a rectangle around the center before
// the exact distance check. One degree of latitude is about 69 miles; the
// longitude span widens with latitude and is skipped near the poles where
// cos(lat) vanishes.
func applyBoundingBox(q *gorm.DB, geo *domain.GeoFilter) *gorm.DB {
	q = q.Where("latitude IS NOT NULL AND longitude IS NOT NULL")

	latSpan := geo.Radius / milesPerDegreeLat
	q = q.Where("latitude BETWEEN ? AND ?", geo.Latitude-latSpan, geo.Latitude+latSpan)

	cosLat := math.Cos(geo.Latitude * math.Pi / 180)
	if cosLat > 1e-3 {
		lonSpan := geo.Radius / (milesPerDegreeLat * cosLat)
		q = q.Where("longitude BETWEEN ? AND ?", geo.Longitude-lonSpan, geo.Longitude+lonSpan)
	}
	return q
}

func paginate(listings []*domain.Listing, page domain.Page) []*domain.Listing {
	if page.Skip >= len(listings) {
		return []*domain.Listing{}
	}
	listings = listings[page.Skip:]
	if page.Limit < len(listings) {
		listings = listings[:page.Limit]
	}
	return listings
}

// translateConstraint surfaces storage-level constraint violations as
// validation errors instead of leaking a raw database error.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidListingData, err)
	}
	if strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return fmt.Errorf("%w: %v", domain.ErrInvalidListingData, err)
	}
	return err
}
