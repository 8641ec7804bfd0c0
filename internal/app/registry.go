package app

import (
	"context"
	"net/http"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type modules struct {
	employeeRepo   employee.Repository
	publisher      employee.EventPublisher
	redis          redis.Cmdable
	idempotencyTTL time.Duration
}

type pinger interface {
	Ping(ctx context.Context) error
}

func registerModules(router gin.IRouter, m modules) {
	logger := zap.L()

	employeeService := employee.NewService(m.employeeRepo, m.publisher, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)

	var createMiddleware []gin.HandlerFunc
	if m.redis != nil {
		createMiddleware = append(createMiddleware, middleware.Idempotency(m.redis, m.idempotencyTTL, logger))
	}

	router.GET("/healthz", healthHandler(m.employeeRepo))
	employee.RegisterRoutes(router, employeeHandler, createMiddleware...)
}

// healthHandler reports 503 when the store does not answer within
// healthTimeout.
func healthHandler(store pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			zap.L().Warn("health check failed", zap.Error(err))
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
