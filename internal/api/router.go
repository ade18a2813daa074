package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/worksync/session-agent/internal/api/docs" // OpenAPI description
	"github.com/worksync/session-agent/internal/api/handler"
	"github.com/worksync/session-agent/internal/api/middleware"
	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/infrastructure/http/handlers"
)

// Sessions is what the router needs from the session manager.
type Sessions interface {
	handler.SessionService
	middleware.SessionGate
}

// Workforce is what the router needs from the workforce service.
type Workforce interface {
	handler.AttendanceService
	handler.LeaveService
	handler.AdminService
}

// Dependencies are the services the agent surface is built on.
type Dependencies struct {
	Sessions      Sessions
	Notifications handler.NotificationService
	Workforce     Workforce
	// Checks are probed by the readiness route, keyed by dependency name.
	Checks map[string]handlers.Check
	// Location renders exported attendance timestamps. Defaults to time.Local.
	Location *time.Location
	// Registerer and Gatherer back the HTTP metrics. Both default to the
	// global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "worksync_agent",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes and metrics (no session required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Sessions, deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – bootstrap done, stores up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session routes (public) ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)

	v1 := e.Group("/v1")
	v1.GET("/session", sessionHandler.State)
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/logout", sessionHandler.Logout)

	// --- Protected routes ---
	protected := v1.Group("", middleware.RequireSession(deps.Sessions))

	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	protected.GET("/notifications", notificationHandler.List)
	protected.POST("/notifications/refresh", notificationHandler.Refresh)
	protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
	protected.DELETE("/notifications", notificationHandler.ClearAll)

	attendanceHandler := handler.NewAttendanceHandler(deps.Workforce, deps.Location)
	protected.POST("/attendance", attendanceHandler.Mark)
	protected.GET("/attendance/today", attendanceHandler.Today)
	protected.GET("/attendance/history", attendanceHandler.History)
	protected.GET("/attendance/stats", attendanceHandler.Stats)
	protected.GET("/attendance/export", attendanceHandler.Export)

	leaveHandler := handler.NewLeaveHandler(deps.Workforce)
	protected.GET("/leaves", leaveHandler.List)
	protected.POST("/leaves", leaveHandler.Submit)
	protected.DELETE("/leaves/:id", leaveHandler.Cancel)

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(deps.Workforce)
	admin := protected.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/users", adminHandler.RegisterUser)
	admin.POST("/users/:id/image", adminHandler.UploadImage)
	admin.POST("/password/strength", adminHandler.PasswordStrength)
	admin.POST("/password/generate", adminHandler.GeneratePassword)
	admin.DELETE("/users", adminHandler.DeleteUsers)
	admin.DELETE("/attendance", adminHandler.DeleteAttendance)
	admin.DELETE("/leaves", adminHandler.DeleteLeaves)
	admin.POST("/reset-system", adminHandler.ResetSystem)

	return e
}
