package usecase

import (
	"context"
	"time"

	"github.com/stashspot/backend/internal/listing/domain"
	userdomain "github.com/stashspot/backend/internal/user/domain"
)

// Storage uploads photo bytes and returns a public URL.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// PhotoUsecase appends uploaded photos to a listing's image list.
type PhotoUsecase struct {
	storage Storage
	repo    domain.ListingRepository
}

func NewPhotoUsecase(storage Storage, repo domain.ListingRepository) *PhotoUsecase {
	return &PhotoUsecase{storage: storage, repo: repo}
}

// UploadPhoto stores the file and records its URL on the listing. The same
// owner-or-admin rule as the other mutations applies.
func (uc *PhotoUsecase) UploadPhoto(ctx context.Context, listingID, fileName string, data []byte, actor userdomain.Principal) (string, error) {
	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return "", err
	}
	if err := authorizeMutation(listing, actor); err != nil {
		return "", err
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		return "", err
	}

	listing.Images = append(listing.Images, url)
	listing.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, listing); err != nil {
		return "", err
	}
	return url, nil
}
