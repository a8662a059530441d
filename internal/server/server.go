// FILE: internal/server/server.go
package server

import (
	"log"

	"offerstack-be/internal/bootstrap"
	"offerstack-be/internal/config"
	"offerstack-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB, JSON payloads only
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	// Admin back office
	c.AuthController.RegisterRoutes(api)
	c.GuaranteeController.RegisterRoutes(api)
	c.CampaignController.RegisterRoutes(api)
	c.SalesController.RegisterRoutes(api)
	c.CatalogController.RegisterRoutes(api)
	c.ContinuityController.RegisterRoutes(api)
	c.LeadController.RegisterRoutes(api)

	// Public surface
	c.ChatController.RegisterRoutes(api)
	c.StoreController.RegisterRoutes(api)

	c.NotificationHandler.RegisterRoutes(api)
}
