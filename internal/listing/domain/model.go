package domain

import "time"

// SpaceType is the category of storage space offered by a listing.
type SpaceType string

const (
	SpaceGarage      SpaceType = "garage"
	SpaceBasement    SpaceType = "basement"
	SpaceAttic       SpaceType = "attic"
	SpaceShed        SpaceType = "shed"
	SpaceStorageUnit SpaceType = "storage_unit"
	SpaceWarehouse   SpaceType = "warehouse"
	SpaceCloset      SpaceType = "closet"
	SpaceRoom        SpaceType = "room"
	SpaceOutdoor     SpaceType = "outdoor"
	SpaceOther       SpaceType = "other"
)

// Valid reports whether s is one of the known space categories.
func (s SpaceType) Valid() bool {
	switch s {
	case SpaceGarage, SpaceBasement, SpaceAttic, SpaceShed, SpaceStorageUnit,
		SpaceWarehouse, SpaceCloset, SpaceRoom, SpaceOutdoor, SpaceOther:
		return true
	}
	return false
}

// Listing is a storage space offered for monthly rental by a host.
type Listing struct {
	ID                 string
	HostID             string
	Title              string
	Description        string
	SpaceType          SpaceType
	Size               int // square feet
	PricePerMonth      int // cents
	Address            string
	City               string
	State              string
	ZipCode            string
	Country            string
	Latitude           *float64 // both coordinates set, or neither
	Longitude          *float64
	Images             []string
	Features           []string
	AccessInstructions string
	AccessType         string // e.g. "24/7", "scheduled"
	AvailableFrom      *time.Time
	AvailableTo        *time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasCoordinates reports whether the listing carries a geocoordinate.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Filter holds the optional search criteria for listings. Zero values mean
// the corresponding clause is not applied. All clauses compose with AND;
// the location clause matches city, state, zip or address with OR.
type Filter struct {
	Location  string
	SpaceType SpaceType
	MinPrice  *int
	MaxPrice  *int
	MinSize   *int
	MaxSize   *int
	Geo       *GeoFilter
}

// DefaultPageLimit caps search results when the caller does not ask for a limit.
const DefaultPageLimit = 100

// Page is an offset/limit window applied after filtering and ordering.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps the page to a non-negative offset and a positive limit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	return p
}
