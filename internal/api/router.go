package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskmate/taskmate-api/docs"
	"github.com/taskmate/taskmate-api/internal/api/handler"
	"github.com/taskmate/taskmate-api/internal/api/middleware"
	"github.com/taskmate/taskmate-api/internal/core/ports"
	"github.com/taskmate/taskmate-api/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the HTTP layer needs. Registerer and Gatherer
// default to the global Prometheus registry.
type Deps struct {
	Tasks       ports.TaskService
	Auth        ports.AuthService
	Revocations ports.TokenRevocationStore
	JWTSecret   string
	Logger      zerolog.Logger

	// Readiness checks run by /health/ready, keyed by dependency name.
	Readiness map[string]handlers.Check

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "taskmate",
		Registerer: d.Registerer,
	}))
	// Inside the metrics middleware so errors are rendered before status is recorded.
	e.Use(requestLogger(d.Logger))

	// --- Operational routes (no auth) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authenticate := middleware.Authenticate(d.JWTSecret, d.Revocations, d.Logger)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authenticate, middleware.RequireAuthenticated())
	auth.GET("/me", authHandler.Me, authenticate, middleware.RequireAuthenticated())

	// --- Task API: anonymous callers pass through; the core decides ---
	taskHandler := handler.NewTaskHandler(d.Tasks)
	tasks := e.Group("/api", authenticate)
	tasks.GET("/tasks", taskHandler.List)
	tasks.POST("/tasks", taskHandler.Create)
	tasks.GET("/tasks/:id", taskHandler.Get)
	tasks.PUT("/tasks/:id", taskHandler.Update)
	tasks.DELETE("/tasks/:id", taskHandler.Delete)
	tasks.GET("/stats", taskHandler.Stats)
	tasks.GET("/dashboard", taskHandler.Dashboard)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
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
