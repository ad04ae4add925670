// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/amirphl/email-feedback/app/dto"
	"github.com/amirphl/email-feedback/app/handlers"
	"github.com/amirphl/email-feedback/app/middleware"
	"github.com/amirphl/email-feedback/config"
	_ "github.com/amirphl/email-feedback/docs"
	"github.com/amirphl/email-feedback/logger"
	"github.com/amirphl/email-feedback/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

const healthPath = "/api/v1/health"

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Pinger reports whether a dependency such as the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app              *fiber.App
	cfg              *config.ProductionConfig
	log              *logger.Logger
	db               Pinger
	ratingHandler    handlers.RatingHandlerInterface
	dashboardHandler handlers.RatingDashboardHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	log *logger.Logger,
	db Pinger,
	ratingHandler handlers.RatingHandlerInterface,
	dashboardHandler handlers.RatingDashboardHandlerInterface,
) Router {
	r := &FiberRouter{
		cfg:              cfg,
		log:              log,
		db:               db,
		ratingHandler:    ratingHandler,
		dashboardHandler: dashboardHandler,
	}

	r.app = fiber.New(fiber.Config{
		AppName:      "Email Feedback",
		ServerHeader: "email-feedback",
		ErrorHandler: r.errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return r
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")
	api.Get("/health", r.healthCheck)

	if r.cfg.Deployment.IsDevelopment() {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		r.log.Info("API documentation enabled for development")
	}

	// Public ingestion
	api.Post("/ratings", r.ratingHandler.Submit)

	// Internal dashboard; deploy behind an authenticating proxy
	api.Get("/admin/ratings", r.dashboardHandler.ListRatings)
	r.app.Get("/feedback/dashboard", r.dashboardHandler.Dashboard)

	r.app.Use(r.notFoundHandler)

	r.log.Info("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    utils.RequestIDHeader,
		Generator: uuid.NewString,
	}))

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			r.log.Error("panic recovered",
				"request_id", requestid.FromContext(c),
				"error", fmt.Sprint(e),
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
			)
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                r.cfg.Security.HSTSMaxAge,
		ContentSecurityPolicy:     r.cfg.Security.CSPPolicy,
		ReferrerPolicy:            r.cfg.Security.ReferrerPolicy,
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// Landing pages on other origins post ratings directly
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Security.AllowedOrigins,
		AllowMethods: []string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodHead, fiber.MethodOptions,
		},
		AllowHeaders: []string{
			fiber.HeaderOrigin,
			fiber.HeaderContentType,
			fiber.HeaderAccept,
			"X-Requested-With",
			utils.RequestIDHeader,
		},
		ExposeHeaders: []string{
			utils.RequestIDHeader,
		},
		MaxAge: r.cfg.Security.CORSMaxAge,
	}))

	if r.cfg.Server.EnableCompress {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
			Next: func(c fiber.Ctx) bool {
				// exports are streamed and xlsx is already zipped
				return c.Query("export") != "" || c.Path() == r.cfg.Metrics.Path
			},
		}))
	}

	r.app.Use(middleware.AccessLog(r.log, healthPath, r.cfg.Metrics.Path))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	r.log.Info("Starting server", "address", address)
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// healthCheck reports service and database status
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is healthy"
// @Failure 503 {object} dto.APIResponse "Database unreachable"
// @Router /api/v1/health [get]
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	data := fiber.Map{
		"status":    "ok",
		"timestamp": utils.UTCNow().Unix(),
		"version":   r.cfg.Deployment.Version,
		"service":   r.cfg.Deployment.ServiceName,
		"database":  "ok",
	}

	if r.db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.db.PingContext(ctx); err != nil {
			r.log.Warn("health check database ping failed", "error", err)
			data["status"] = "degraded"
			data["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.APIResponse{
				Success: false,
				Message: "Database is unreachable",
				Data:    data,
				Error:   dto.ErrorDetail{Code: "DATABASE_UNAVAILABLE"},
			})
		}
	}

	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data:    data,
	})
}

// serveSwaggerJSON serves the registered OpenAPI document
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

// errorHandler maps errors that escape handlers to the standard JSON envelope
func (r *FiberRouter) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"
	errorCode := "INTERNAL_ERROR"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
			errorCode = strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
		}
	}

	if code >= fiber.StatusInternalServerError {
		r.log.Error("request failed", "status", code, "error", err, "path", c.Path(), "request_id", requestid.FromContext(c))
	}

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errorCode,
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}
