package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	h := deps.Handlers // Shorthand for handlers

	// Health check and metrics routes (no auth required)
	h.Health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	h.Docs.RegisterRoutes(app)

	// Authentication
	requireJWT := deps.AuthMiddleware.RequireJWT()
	app.Post("/login", h.Auth.Login)
	app.Post("/logout", requireJWT, h.Auth.Logout)

	// Client and document routes (JWT auth)
	clients := app.Group("/clients", requireJWT)
	documents := app.Group("/documents", requireJWT)

	h.Clients.RegisterRoutes(clients)
	h.Documents.RegisterRoutes(clients, documents)
}
