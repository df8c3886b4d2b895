package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes sets up all API routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	// CORS - the dashboard frontend and CLI call from anywhere
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Health check
	app.Get("/health", handler.Health)

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Claim flow
	v1.Post("/claim", handler.Claim)
	v1.Get("/claim", handler.GetDisplayState)
	v1.Post("/claim/reset", handler.ResetClaim)
	v1.Post("/claim/ack", handler.AcknowledgeFailure)

	// Status endpoint
	v1.Get("/status/:address", handler.GetStatus)

	// Info endpoint
	v1.Get("/info", handler.GetInfo)
}
