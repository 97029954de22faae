package postgres

import (
	"time"

	"github.com/stashspot/backend/internal/listing/domain"
	userdomain "github.com/stashspot/backend/internal/user/domain"
)

// listingRecord is the relational shape of a domain Listing. Image and
// feature lists are serialized as JSON so the schema works on both Postgres
// and the sqlite test databases.
type listingRecord struct {
	ID                 string `gorm:"primaryKey;size:36"`
	HostID             string `gorm:"size:36;not null;index"`
	Title              string `gorm:"not null"`
	Description        string
	SpaceType          string `gorm:"not null;index"`
	Size               int    `gorm:"not null;check:size > 0"`
	PricePerMonth      int    `gorm:"not null;check:price_per_month >= 0"`
	Address            string `gorm:"not null"`
	City               string `gorm:"not null;index"`
	State              string `gorm:"not null"`
	ZipCode            string `gorm:"not null"`
	Country            string `gorm:"not null"`
	Latitude           *float64
	Longitude          *float64
	Images             []string `gorm:"serializer:json"`
	Features           []string `gorm:"serializer:json"`
	AccessInstructions string
	AccessType         string
	AvailableFrom      *time.Time
	AvailableTo        *time.Time
	IsActive           bool `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (listingRecord) TableName() string { return "listings" }

type userRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string
	Phone        string
	Bio          string
	Avatar       string
	IsHost       bool
	IsAdmin      bool
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

// bookingRecord and reviewRecord are dependent resources removed by the
// listing delete cascade.
type bookingRecord struct {
	ID            string `gorm:"primaryKey;size:36"`
	ListingID     string `gorm:"size:36;not null;index"`
	RenterID      string `gorm:"size:36;not null;index"`
	StartDate     time.Time
	EndDate       *time.Time
	TotalPrice    int // cents
	PlatformFee   int // cents
	Status        string `gorm:"default:pending"`
	PaymentStatus string `gorm:"default:pending"`
	CreatedAt     time.Time
}

func (bookingRecord) TableName() string { return "bookings" }

type reviewRecord struct {
	ID         string `gorm:"primaryKey;size:36"`
	BookingID  string `gorm:"size:36;index"`
	ListingID  string `gorm:"size:36;index"`
	ReviewerID string `gorm:"size:36;not null"`
	ReviewedID string `gorm:"size:36;not null"`
	Rating     int    `gorm:"not null"`
	Comment    string
	IsPublic   bool `gorm:"default:true"`
	CreatedAt  time.Time
}

func (reviewRecord) TableName() string { return "reviews" }

func toListingRecord(l *domain.Listing) *listingRecord {
	if l == nil {
		return nil
	}
	return &listingRecord{
		ID:                 l.ID,
		HostID:             l.HostID,
		Title:              l.Title,
		Description:        l.Description,
		SpaceType:          string(l.SpaceType),
		Size:               l.Size,
		PricePerMonth:      l.PricePerMonth,
		Address:            l.Address,
		City:               l.City,
		State:              l.State,
		ZipCode:            l.ZipCode,
		Country:            l.Country,
		Latitude:           l.Latitude,
		Longitude:          l.Longitude,
		Images:             l.Images,
		Features:           l.Features,
		AccessInstructions: l.AccessInstructions,
		AccessType:         l.AccessType,
		AvailableFrom:      l.AvailableFrom,
		AvailableTo:        l.AvailableTo,
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func toDomainListing(r *listingRecord) *domain.Listing {
	if r == nil {
		return nil
	}
	return &domain.Listing{
		ID:                 r.ID,
		HostID:             r.HostID,
		Title:              r.Title,
		Description:        r.Description,
		SpaceType:          domain.SpaceType(r.SpaceType),
		Size:               r.Size,
		PricePerMonth:      r.PricePerMonth,
		Address:            r.Address,
		City:               r.City,
		State:              r.State,
		ZipCode:            r.ZipCode,
		Country:            r.Country,
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
		Images:             r.Images,
		Features:           r.Features,
		AccessInstructions: r.AccessInstructions,
		AccessType:         r.AccessType,
		AvailableFrom:      r.AvailableFrom,
		AvailableTo:        r.AvailableTo,
		IsActive:           r.IsActive,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toDomainListings(records []listingRecord) []*domain.Listing {
	listings := make([]*domain.Listing, 0, len(records))
	for i := range records {
		listings = append(listings, toDomainListing(&records[i]))
	}
	return listings
}

func toUserRecord(u *userdomain.User) *userRecord {
	if u == nil {
		return nil
	}
	return &userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Phone:        u.Phone,
		Bio:          u.Bio,
		Avatar:       u.Avatar,
		IsHost:       u.IsHost,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

func toDomainUser(r *userRecord) *userdomain.User {
	if r == nil {
		return nil
	}
	return &userdomain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Bio:          r.Bio,
		Avatar:       r.Avatar,
		IsHost:       r.IsHost,
		IsAdmin:      r.IsAdmin,
		CreatedAt:    r.CreatedAt,
	}
}
