package handler

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth     *AuthHandler
	Session  *SessionHandler
	Location *LocationHandler
	Hotel    *HotelHandler
	Category *CategoryHandler
	Tour     *TourHandler
	Booking  *BookingHandler
	Audit    *AuditHandler
	Image    *ImageHandler
	Health   *HealthHandler
}

type Guards struct {
	ServerStatus        fiber.Handler
	RequireAgency       fiber.Handler
	RequireAdmin        fiber.Handler
	RequireCustomer     fiber.Handler
	RequireSubscription fiber.Handler
	PublicOnly          fiber.Handler
}

func SetupRoutes(app *fiber.App, h Handlers, g Guards) {
	// Health checks (public)
	app.Get("/health", h.Health.Health)
	app.Get("/ready", h.Health.Ready)

	// Reachability stays readable while the backend is down so clients
	// can render the offline banner and trigger a manual probe.
	api := app.Group("/api")
	api.Get("/status", h.Health.Status)
	api.Post("/status/refresh", h.Health.Refresh)

	// Customer portal auth (public)
	auth := api.Group("/auth", g.ServerStatus)
	auth.Post("/signup", g.PublicOnly, h.Auth.SignUpCustomer)
	auth.Post("/login", g.PublicOnly, h.Auth.LoginCustomer)
	auth.Post("/logout", g.RequireCustomer, h.Auth.LogoutCustomer)

	// Customer bookings (protected)
	bookings := api.Group("/bookings", g.ServerStatus, g.RequireCustomer)
	bookings.Post("/", h.Booking.Create)
	bookings.Get("/", h.Booking.ListMine)

	// Back-office auth
	agency := api.Group("/agency", g.ServerStatus)
	agency.Post("/auth/login", g.PublicOnly, h.Auth.LoginAgency)
	agency.Post("/auth/logout", g.RequireAgency, h.Auth.LogoutAgency)
	agency.Get("/session", g.RequireAgency, h.Session.Status)

	// Back-office records (protected, writes need a live subscription)
	locations := agency.Group("/locations", g.RequireAgency, g.RequireSubscription)
	locations.Post("/", h.Location.Create)
	locations.Get("/", h.Location.List)
	locations.Get("/:id", h.Location.Get)
	locations.Put("/:id", h.Location.Update)
	locations.Delete("/:id", h.Location.Delete)

	hotels := agency.Group("/hotels", g.RequireAgency, g.RequireSubscription)
	hotels.Post("/", h.Hotel.Create)
	hotels.Get("/", h.Hotel.List)
	hotels.Get("/:id", h.Hotel.Get)
	hotels.Put("/:id", h.Hotel.Update)
	hotels.Delete("/:id", h.Hotel.Delete)

	categories := agency.Group("/categories", g.RequireAgency, g.RequireSubscription)
	categories.Post("/", h.Category.Create)
	categories.Get("/", h.Category.List)
	categories.Get("/:id", h.Category.Get)
	categories.Put("/:id", h.Category.Update)
	categories.Delete("/:id", h.Category.Delete)

	tours := agency.Group("/tours", g.RequireAgency, g.RequireSubscription)
	tours.Post("/", h.Tour.Create)
	tours.Get("/", h.Tour.List)
	tours.Get("/:id", h.Tour.Get)
	tours.Put("/:id", h.Tour.Update)
	tours.Delete("/:id", h.Tour.Delete)

	agencyBookings := agency.Group("/bookings", g.RequireAgency)
	agencyBookings.Get("/", h.Booking.ListAgency)
	agencyBookings.Get("/:id", h.Booking.Get)
	agencyBookings.Patch("/:id/status", h.Booking.UpdateStatus)

	// Media (protected)
	images := agency.Group("/images", g.RequireAgency, g.RequireSubscription)
	images.Post("/", h.Image.Upload)
	images.Delete("/", h.Image.Delete)

	// Audit trail (admin only)
	agency.Get("/audit-logs", g.RequireAdmin, h.Audit.List)
}
