package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stashspot/backend/internal/adapter/httpapi/middleware"
	"github.com/stashspot/backend/internal/platform/logger"
	"github.com/stashspot/backend/internal/platform/metrics"
)

// NewRouter assembles the HTTP surface. Reads on the listing catalogue are
// public; every mutation and the user profile sit behind JWT auth.
func NewRouter(listings *ListingHandler, users *UserHandler, jwtSecret string, m *metrics.MetricsManager, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	auth := middleware.JWTAuth(jwtSecret, log)

	r.Route("/api", func(r chi.Router) {
		r.Route("/listings", func(r chi.Router) {
			r.Get("/", listings.HandleSearchListings)
			r.Get("/{id}", listings.HandleGetListing)
			r.Get("/host/{hostID}", listings.HandleGetListingsByHost)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", listings.HandleCreateListing)
				r.Post("/from-frontend", listings.HandleCreateListingFromFrontend)
				r.Patch("/{id}", listings.HandleUpdateListing)
				r.Put("/{id}", listings.HandleUpdateListing)
				r.Delete("/{id}", listings.HandleDeleteListing)
				r.Post("/{id}/photos", listings.HandleUploadPhoto)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", users.HandleRegister)
			r.Post("/login", users.HandleLogin)
			r.Get("/{id}", users.HandleGetUser)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/me", users.HandleMe)
				r.Put("/{id}", users.HandleUpdateUser)
			})
		})
	})

	return r
}
