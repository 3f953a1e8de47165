package server

import (
	"log"

	"item-finder-be/internal/bootstrap"
	"item-finder-be/internal/config"
	"item-finder-be/internal/pkg/serverutils"

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
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, photo batches
	})

	// Middleware
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

	// Routes
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
	// Liveness probe plus a short endpoint listing for anyone poking the root.
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":  "ok",
			"service": "item-finder-backend",
			"endpoints": []string{
				"POST /api/analysis/v1/analyze",
				"GET /api/analysis/v1/results/:sessionId",
				"POST /api/aisle/v1/match",
				"GET /api/aisle/v1/match-items/:sessionId",
				"POST /api/category/v1",
				"PUT /api/category/v1/aisle",
				"GET /api/category/v1",
				"GET /api/category/v1/:id",
				"POST /api/reconcile/v1/sessions",
				"GET /api/reconcile/v1/sessions/:id",
			},
		})
	})

	api := app.Group("/api")

	c.AnalysisController.RegisterRoutes(api)
	c.AisleController.RegisterRoutes(api)
	c.CategoryController.RegisterRoutes(api)
	c.ReconcileController.RegisterRoutes(api)
}
