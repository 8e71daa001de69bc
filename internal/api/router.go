package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sabor/restaurant-orders/internal/api/handler"
	"github.com/sabor/restaurant-orders/internal/api/middleware"
	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"

	_ "github.com/sabor/restaurant-orders/docs"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Log     zerolog.Logger
	Auth    ports.AuthService
	Tokens  ports.TokenService
	Users   middleware.RoleLoader
	Catalog ports.CatalogService
	Orders  ports.OrderService
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.DependencyCheck
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "restaurant",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks, deps.Log)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	adminHandler := handler.NewAdminHandler(deps.Orders)

	authGate := middleware.Auth(deps.Tokens, deps.Users)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/products", catalogHandler.List)

	// --- Orders (any authenticated user; transition policy lives in the service) ---
	orders := e.Group("/orders", authGate)
	orders.POST("", orderHandler.Create)
	orders.GET("/history", orderHandler.History)
	orders.GET("/all", orderHandler.All, adminOnly)
	orders.PATCH("/:id/status", orderHandler.Transition)

	// --- Admin ---
	admin := e.Group("/admin", authGate, adminOnly)
	admin.GET("/orders", orderHandler.All)
	admin.PATCH("/orders/:id/status", orderHandler.Transition)
	admin.DELETE("/orders/:id", adminHandler.Delete)
	admin.GET("/orders/:id/events", adminHandler.Events)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
