// Package router assembles the chi router for the public booking API and
// the JWT-protected admin surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mirrorfinish/detailing-platform/internal/http/handlers"
	httpmiddleware "github.com/mirrorfinish/detailing-platform/internal/http/middleware"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Bookings           *handlers.BookingsHandler
	Availability       *handlers.AvailabilityHandler
	Contact            *handlers.ContactHandler
	AdminBookings      *handlers.AdminBookingsHandler
	AdminSettings      *handlers.AdminSettingsHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests per second and burst for the public write endpoints.
	// Zero disables rate limiting.
	PublicRateLimit float64
	PublicRateBurst int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	var publicLimit func(http.Handler) http.Handler
	if cfg.PublicRateLimit > 0 {
		publicLimit = httpmiddleware.RateLimit(cfg.PublicRateLimit, cfg.PublicRateBurst)
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Route("/api", func(api chi.Router) {
			if cfg.Availability != nil {
				api.Mount("/availability", cfg.Availability.Routes())
			}
			if cfg.Bookings != nil {
				api.Group(func(writes chi.Router) {
					if publicLimit != nil {
						writes.Use(publicLimit)
					}
					writes.Mount("/bookings", cfg.Bookings.Routes())
				})
			}
			if cfg.Contact != nil {
				api.Group(func(writes chi.Router) {
					if publicLimit != nil {
						writes.Use(publicLimit)
					}
					writes.Post("/contact", cfg.Contact.Submit)
				})
			}
		})
	})

	// Admin routes, protected by an HMAC JWT.
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.AdminBookings != nil {
				admin.Mount("/bookings", cfg.AdminBookings.Routes())
			}
			if cfg.AdminSettings != nil {
				admin.Mount("/settings", cfg.AdminSettings.Routes())
			}
		})
	}

	return r
}
