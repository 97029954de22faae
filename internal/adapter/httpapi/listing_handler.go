package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/stashspot/backend/internal/adapter/httpapi/middleware"
	"github.com/stashspot/backend/internal/listing/domain"
	"github.com/stashspot/backend/internal/listing/usecase"
	"github.com/stashspot/backend/internal/platform/logger"
	"github.com/stashspot/backend/internal/platform/metrics"
)

const maxPhotoUploadBytes = 10 << 20 // 10 MiB

// ListingHandler maps the listing HTTP surface onto the usecases.
type ListingHandler struct {
	listings *usecase.ListingUsecase
	photos   *usecase.PhotoUsecase // nil when no object storage is configured
	metrics  *metrics.MetricsManager
	logger   *logger.Logger
}

func NewListingHandler(listings *usecase.ListingUsecase, photos *usecase.PhotoUsecase, m *metrics.MetricsManager, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		photos:   photos,
		metrics:  m,
		logger:   log.Named("ListingHandler"),
	}
}

// HandleSearchListings serves GET /api/listings with the optional filter and
// pagination query parameters.
func (h *ListingHandler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minPrice, err := intParam(query.Get("min_price"))
	if err != nil {
		respondError(w, err)
		return
	}
	maxPrice, err := intParam(query.Get("max_price"))
	if err != nil {
		respondError(w, err)
		return
	}
	minSize, err := intParam(query.Get("min_size"))
	if err != nil {
		respondError(w, err)
		return
	}
	maxSize, err := intParam(query.Get("max_size"))
	if err != nil {
		respondError(w, err)
		return
	}
	latitude, err := floatParam(query.Get("latitude"))
	if err != nil {
		respondError(w, err)
		return
	}
	longitude, err := floatParam(query.Get("longitude"))
	if err != nil {
		respondError(w, err)
		return
	}
	radius, err := floatParam(query.Get("radius"))
	if err != nil {
		respondError(w, err)
		return
	}

	filter := domain.Filter{
		Location:  query.Get("location"),
		SpaceType: domain.SpaceType(query.Get("space_type")),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		MinSize:   minSize,
		MaxSize:   maxSize,
		Geo:       domain.NewGeoFilter(latitude, longitude, radius),
	}

	page := domain.Page{}
	if skip, err := intParam(query.Get("skip")); err != nil {
		respondError(w, err)
		return
	} else if skip != nil {
		page.Skip = *skip
	}
	if limit, err := intParam(query.Get("limit")); err != nil {
		respondError(w, err)
		return
	} else if limit != nil {
		page.Limit = *limit
	}

	listings, err := h.listings.SearchListings(r.Context(), filter, page)
	if err != nil {
		h.logger.Error("Search failed", zap.Error(err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *ListingHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.GetListingByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) HandleGetListingsByHost(w http.ResponseWriter, r *http.Request) {
	hostID := chi.URLParam(r, "hostID")
	listings, err := h.listings.GetListingsByHost(r.Context(), hostID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *ListingHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body: " + err.Error()})
		return
	}

	listing, err := h.listings.CreateListing(r.Context(), req.toInput(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ListingsCreatedTotal.Inc()
	}
	respondJSON(w, http.StatusCreated, toListingResponse(listing))
}

// HandleCreateListingFromFrontend accepts the loosely typed web-form shape,
// adapts it and then runs the normal create path.
func (h *ListingHandler) HandleCreateListingFromFrontend(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var raw usecase.FrontendListing
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body: " + err.Error()})
		return
	}

	input, err := usecase.AdaptFrontendListing(raw)
	if err != nil {
		respondError(w, err)
		return
	}

	listing, err := h.listings.CreateListing(r.Context(), input, principal)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ListingsCreatedTotal.Inc()
	}
	respondJSON(w, http.StatusCreated, toListingResponse(listing))
}

func (h *ListingHandler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body: " + err.Error()})
		return
	}

	listing, err := h.listings.UpdateListing(r.Context(), id, req.toInput(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ListingUpdatesTotal.Inc()
	}
	respondJSON(w, http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.listings.DeleteListing(r.Context(), id, principal); err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ListingDeletesTotal.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListingHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		http.Error(w, "photo storage is not configured", http.StatusServiceUnavailable)
		return
	}
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid multipart form: " + err.Error()})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "photo file is required"})
		return
	}
	defer file.Close()

	// Read one byte past the cap so an oversized file is rejected instead of
	// stored truncated.
	data, err := io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes+1))
	if err != nil {
		respondError(w, err)
		return
	}
	if len(data) > maxPhotoUploadBytes {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "photo exceeds the 10 MiB upload limit"})
		return
	}

	id := chi.URLParam(r, "id")
	url, err := h.photos.UploadPhoto(r.Context(), id, header.Filename, data, principal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func intParam(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, badQueryParam(raw, err)
	}
	return &v, nil
}

func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badQueryParam(raw, err)
	}
	return &v, nil
}

func badQueryParam(raw string, err error) error {
	return &queryParamError{raw: raw, err: err}
}

type queryParamError struct {
	raw string
	err error
}

func (e *queryParamError) Error() string {
	return "invalid query parameter value " + strconv.Quote(e.raw) + ": " + e.err.Error()
}

// Unwrap lets respondError classify the failure as malformed input.
func (e *queryParamError) Unwrap() error { return domain.ErrInvalidListingData }
