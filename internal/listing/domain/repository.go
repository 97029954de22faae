package domain

import "context"

// ListingRepository is the persistence contract for listings. Delete cascades
// removal of the listing's dependent bookings and reviews in one transaction.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByHost(ctx context.Context, hostID string) ([]*Listing, error)
	FindByFilter(ctx context.Context, filter Filter, page Page) ([]*Listing, error)
}
