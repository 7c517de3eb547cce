// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"contractor-directory/internal/app/service"
	"contractor-directory/internal/transport/httpserver/handler"
	"contractor-directory/internal/transport/httpserver/middleware"
	"contractor-directory/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// ready is the readiness probe wired into /readyz.
func NewServer(
	cfg ServerConfig,
	directorySvc *service.DirectoryService,
	v *validator.Validator,
	ready func(c *fiber.Ctx) bool,
	logger *zap.Logger,
) *Server {
	// Template engine for the directory pages
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      "contractor-directory",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(ready))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	// Static files
	app.Static("/static", "./web/static")

	// Create handlers
	contractorHandler := handler.NewContractorHandler(directorySvc, v, logger)
	adminHandler := handler.NewAdminHandler(directorySvc, logger)
	pagesHandler := handler.NewPagesHandler(directorySvc, logger)

	registerRoutes(app, contractorHandler, adminHandler, pagesHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all routes.
func registerRoutes(
	app *fiber.App,
	contractorHandler *handler.ContractorHandler,
	adminHandler *handler.AdminHandler,
	pagesHandler *handler.PagesHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// HTML pages and crawler endpoints
	app.Get("/", pagesHandler.Directory)
	app.Get("/contractors/:id", pagesHandler.ContractorDetail)
	app.Get("/sitemap.xml", pagesHandler.Sitemap)
	app.Get("/robots.txt", pagesHandler.Robots)

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Contractors
	contractors := v1.Group("/contractors")
	contractors.Get("/", contractorHandler.Index)
	contractors.Post("/search", contractorHandler.Search)
	contractors.Get("/:id", contractorHandler.GetByID)

	// Taxonomy terms for the filter dropdown
	v1.Get("/service-types", contractorHandler.ServiceTypes)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Post("/warm", adminHandler.Warm)
	admin.Post("/cache/purge", adminHandler.PurgeCache)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
