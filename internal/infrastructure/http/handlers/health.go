package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check probes one dependency.
type Check func(ctx context.Context) error

// MongoCheck pings the credential database.
func MongoCheck(db *mongo.Database) Check {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

// RedisCheck pings the session store.
func RedisCheck(rdb redis.Cmdable) Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

// BootstrapState reports whether session bootstrap is still running.
type BootstrapState interface {
	BootstrapInProgress() bool
}

// ReadinessHandler handles GET /health/ready, the readiness probe.
// The agent is ready once bootstrap has resolved and every configured
// storage backend answers.
type ReadinessHandler struct {
	session BootstrapState
	checks  map[string]Check
}

func NewReadinessHandler(session BootstrapState, checks map[string]Check) *ReadinessHandler {
	return &ReadinessHandler{session: session, checks: checks}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Bootstrap    string                      `json:"bootstrap"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp := readinessResponse{
		Status:       "ok",
		Bootstrap:    "done",
		Dependencies: make(map[string]dependencyStatus, len(h.checks)),
	}
	healthy := true

	if h.session.BootstrapInProgress() {
		resp.Bootstrap = "pending"
		healthy = false
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			resp.Dependencies[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		resp.Dependencies[name] = dependencyStatus{Status: "ok"}
	}

	httpStatus := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}
	return c.JSON(httpStatus, resp)
}
