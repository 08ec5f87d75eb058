package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/pkg/response"
)

// CheckFunc probes a single dependency.
type CheckFunc func(ctx context.Context) error

type dependencyCheck struct {
	name  string
	check CheckFunc
}

type HealthHandler struct {
	checks  []dependencyCheck
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthHandler(db *sqlx.DB, rdb *redis.Client, timeout time.Duration, logger *zap.Logger) *HealthHandler {
	h := newHealthHandler(timeout, logger)
	h.addCheck("database", db.PingContext)
	h.addCheck("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	return h
}

func newHealthHandler(timeout time.Duration, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{timeout: timeout, logger: logger}
}

func (h *HealthHandler) addCheck(name string, check CheckFunc) {
	h.checks = append(h.checks, dependencyCheck{name: name, check: check})
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Success(w, status)
}

// Ready performs readiness check including database and redis connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string, len(h.checks)),
	}

	for _, dep := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		err := dep.check(ctx)
		cancel()

		if err != nil {
			h.logger.Warn("readiness check failed", zap.String("dependency", dep.name), zap.Error(err))
			status.Status = "error"
			status.Checks[dep.name] = "failed: " + err.Error()
			continue
		}
		status.Checks[dep.name] = "ok"
	}

	if status.Status == "error" {
		response.JSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(w, status)
}
