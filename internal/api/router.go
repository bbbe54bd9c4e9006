package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/reachskyline/crm-api/docs"
	"github.com/reachskyline/crm-api/internal/api/handler"
	"github.com/reachskyline/crm-api/internal/api/middleware"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the core.
type Dependencies struct {
	Auth      ports.AuthService
	Ledger    ports.Ledger
	Clients   ports.ClientService
	Tasks     ports.TaskService
	Employees ports.EmployeeService
	Activity  ports.ActivityService

	// HealthChecks are pinged by the readiness probe, keyed by dependency.
	HealthChecks map[string]handler.PingFunc

	JWTSecret   string
	CORSOrigins []string
	Log         zerolog.Logger

	// Registry receives the HTTP request metrics and backs /metrics. Nil
	// uses the Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	promConfig := echoprometheus.MiddlewareConfig{
		Namespace: "crm",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
		DoNotUseRequestPathFor404: true,
	}
	metricsHandler := echoprometheus.NewHandler()
	if d.Registry != nil {
		promConfig.Registerer = d.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(d.HealthChecks)
	authHandler := handler.NewAuthHandler(d.Auth)
	clientHandler := handler.NewClientHandler(d.Ledger, d.Clients)
	taskHandler := handler.NewTaskHandler(d.Ledger, d.Tasks)
	employeeHandler := handler.NewEmployeeHandler(d.Employees)
	activityHandler := handler.NewActivityHandler(d.Activity)

	authenticated := []echo.MiddlewareFunc{
		middleware.Auth(d.JWTSecret),
		middleware.CurrentUser(d.Auth),
	}
	adminOnly := middleware.RequireAdmin()

	// --- Operations (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", healthHandler.Readiness)

	// --- Auth ---
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authenticated...)

	// --- Clients ---
	clients := api.Group("/clients", authenticated...)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Submit)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Tasks ---
	tasks := api.Group("/tasks", authenticated...)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	api.GET("/efficiency/teams", taskHandler.TeamEfficiency, authenticated...)

	// --- Employees ---
	employees := api.Group("/employees", authenticated...)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.POST("", employeeHandler.Create, adminOnly)
	employees.PUT("/:id", employeeHandler.Update, adminOnly)
	employees.DELETE("/:id", employeeHandler.Delete, adminOnly)

	// --- Activity trail ---
	api.GET("/activity", activityHandler.List, authenticated...)

	return e
}

// requestLogger writes one access log line per request through zerolog.
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
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
