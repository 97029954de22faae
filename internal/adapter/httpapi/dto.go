package httpapi

import (
	"time"

	"github.com/stashspot/backend/internal/listing/domain"
	"github.com/stashspot/backend/internal/listing/usecase"
	userdomain "github.com/stashspot/backend/internal/user/domain"
)

type createListingRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	SpaceType          string     `json:"space_type"`
	Size               int        `json:"size"`
	PricePerMonth      int        `json:"price_per_month"`
	Address            string     `json:"address"`
	City               string     `json:"city"`
	State              string     `json:"state"`
	ZipCode            string     `json:"zip_code"`
	Country            string     `json:"country"`
	Latitude           *float64   `json:"latitude"`
	Longitude          *float64   `json:"longitude"`
	Images             []string   `json:"images"`
	Features           []string   `json:"features"`
	AccessInstructions string     `json:"access_instructions"`
	AccessType         string     `json:"access_type"`
	AvailableFrom      *time.Time `json:"available_from"`
	AvailableTo        *time.Time `json:"available_to"`
	IsActive           *bool      `json:"is_active"`
}

func (req createListingRequest) toInput() usecase.CreateListingInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return usecase.CreateListingInput{
		Title:              req.Title,
		Description:        req.Description,
		SpaceType:          domain.SpaceType(req.SpaceType),
		Size:               req.Size,
		PricePerMonth:      req.PricePerMonth,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		Country:            req.Country,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Images:             req.Images,
		Features:           req.Features,
		AccessInstructions: req.AccessInstructions,
		AccessType:         req.AccessType,
		AvailableFrom:      req.AvailableFrom,
		AvailableTo:        req.AvailableTo,
		IsActive:           isActive,
	}
}

// updateListingRequest mirrors createListingRequest with every field
// optional: absent fields stay untouched by the update.
type updateListingRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	SpaceType          *string    `json:"space_type"`
	Size               *int       `json:"size"`
	PricePerMonth      *int       `json:"price_per_month"`
	Address            *string    `json:"address"`
	City               *string    `json:"city"`
	State              *string    `json:"state"`
	ZipCode            *string    `json:"zip_code"`
	Country            *string    `json:"country"`
	Latitude           *float64   `json:"latitude"`
	Longitude          *float64   `json:"longitude"`
	Images             []string   `json:"images"`
	Features           []string   `json:"features"`
	AccessInstructions *string    `json:"access_instructions"`
	AccessType         *string    `json:"access_type"`
	AvailableFrom      *time.Time `json:"available_from"`
	AvailableTo        *time.Time `json:"available_to"`
	IsActive           *bool      `json:"is_active"`
}

func (req updateListingRequest) toInput() usecase.UpdateListingInput {
	patch := usecase.UpdateListingInput{
		Title:              req.Title,
		Description:        req.Description,
		Size:               req.Size,
		PricePerMonth:      req.PricePerMonth,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		Country:            req.Country,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Images:             req.Images,
		Features:           req.Features,
		AccessInstructions: req.AccessInstructions,
		AccessType:         req.AccessType,
		AvailableFrom:      req.AvailableFrom,
		AvailableTo:        req.AvailableTo,
		IsActive:           req.IsActive,
	}
	if req.SpaceType != nil {
		st := domain.SpaceType(*req.SpaceType)
		patch.SpaceType = &st
	}
	return patch
}

type listingResponse struct {
	ID                 string     `json:"id"`
	HostID             string     `json:"host_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	SpaceType          string     `json:"space_type"`
	Size               int        `json:"size"`
	PricePerMonth      int        `json:"price_per_month"`
	Address            string     `json:"address"`
	City               string     `json:"city"`
	State              string     `json:"state"`
	ZipCode            string     `json:"zip_code"`
	Country            string     `json:"country"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	Images             []string   `json:"images,omitempty"`
	Features           []string   `json:"features,omitempty"`
	AccessInstructions string     `json:"access_instructions,omitempty"`
	AccessType         string     `json:"access_type,omitempty"`
	AvailableFrom      *time.Time `json:"available_from,omitempty"`
	AvailableTo        *time.Time `json:"available_to,omitempty"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	return listingResponse{
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
	}
}

func toListingResponses(listings []*domain.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	IsHost    bool      `json:"is_host"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		IsHost:    u.IsHost,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
