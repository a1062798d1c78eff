package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentorlink/mentorlink-backend/internal/config"
	"github.com/mentorlink/mentorlink-backend/internal/handlers"
	"github.com/mentorlink/mentorlink-backend/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Experts       *handlers.ExpertHandler
	Sessions      *handlers.SessionHandler
	Devices       *handlers.DeviceHandler
	Notifications *handlers.NotificationHandler
	Payments      *handlers.PaymentHandler
	Media         *handlers.MediaHandler
	Content       *handlers.ContentHandler
	Search        *handlers.SearchHandler
}

// Setup mounts all API routes.
func Setup(app *fiber.App, cfg *config.Config, h *Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Service descriptor
	api.Get("/", func(c *fiber.Ctx) error {
		return handlers.Results(c, fiber.StatusOK, fiber.Map{
			"name":    cfg.AppName,
			"version": cfg.Version,
		})
	})

	api.Post("/register/", h.Auth.Register)
	api.Post("/login/", h.Auth.Login)

	auth := middleware.RequireAuth(cfg.JWTSecret)

	experts := api.Group("/experts")
	experts.Post("/", auth, h.Experts.Register)
	experts.Get("/:id", h.Experts.Get)

	sessions := api.Group("/sessions", auth)
	sessions.Post("/", h.Sessions.Create)
	sessions.Get("/", h.Sessions.List)
	sessions.Get("/:id", h.Sessions.Get)
	sessions.Get("/:id/events", h.Sessions.Events)
	sessions.Patch("/:id/status", h.Sessions.UpdateStatus)

	devices := api.Group("/devices", auth)
	devices.Post("/", h.Devices.Register)
	devices.Get("/", h.Devices.List)
	devices.Delete("/:id", h.Devices.Delete)

	notifications := api.Group("/notifications", auth)
	notifications.Get("/", h.Notifications.List)
	notifications.Get("/:id", h.Notifications.Get)

	payments := api.Group("/payments", auth)
	payments.Post("/cards/", h.Payments.AddCard)
	payments.Get("/cards/", h.Payments.ListCards)

	media := api.Group("/media", auth)
	media.Post("/", h.Media.Upload)
	media.Get("/", h.Media.List)
	media.Patch("/:id/primary", h.Media.SetPrimary)

	content := api.Group("/content", auth)
	content.Post("/", h.Content.Create)
	content.Delete("/:id", h.Content.Delete)

	search := api.Group("/search")
	search.Get("/experts/", h.Search.Experts)
	search.Get("/experts/random/", h.Search.RandomExperts)
	search.Get("/tags/:id/stats", h.Search.TagStats)

	stats := api.Group("/stats", auth)
	stats.Get("/me-stats/", h.Search.MeStats)
}
