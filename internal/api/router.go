package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/jiet-alumni/alumni-directory/docs"
	"github.com/jiet-alumni/alumni-directory/internal/api/handler"
	"github.com/jiet-alumni/alumni-directory/internal/api/middleware"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

// Deps carries everything the router needs to build its handlers.
type Deps struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Alumni ports.AlumniService
	Log    zerolog.Logger

	// Health lists the stores checked by /health/ready. Nil entries are skipped.
	Health map[string]handler.Pinger

	CORSOrigins []string

	// Registerer receives the HTTP metrics. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "alumni",
		Registerer: d.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	alumniHandler := handler.NewAlumniHandler(d.Alumni)
	healthHandler := handler.NewHealthHandler(d.Health)

	authenticated := middleware.Authenticated(d.Auth)
	adminOnly := middleware.AdminOnly()

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/api/health", healthHandler.Liveness)

	// --- Users ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", authHandler.Profile, authenticated)
	users.GET("", userHandler.List, authenticated, adminOnly)
	users.PUT("/:id/role", userHandler.ChangeRole, authenticated, adminOnly)
	users.DELETE("/:id", userHandler.Delete, authenticated, adminOnly)

	// --- Alumni directory ---
	alumni := e.Group("/api/alumni")
	alumni.GET("", alumniHandler.List)
	alumni.GET("/:id", alumniHandler.Get)
	alumni.POST("", alumniHandler.Create, authenticated, adminOnly)
	alumni.PUT("/:id", alumniHandler.Update, authenticated, adminOnly)
	alumni.DELETE("/:id", alumniHandler.Delete, authenticated, adminOnly)

	return e
}
