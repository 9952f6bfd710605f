package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/auth"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/handlers"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires public endpoints and authenticated APIs.
// Public: /health, /ready
// Authenticated: /detections, /submissions
//
// ledger may be nil, in which case nothing is recorded and /submissions reports 503.
func NewRouter(apiKeys map[string]string, fwd handlers.Forwarder, ledger handlers.Ledger, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the ledger, when configured, is reachable.
	r.GET("/ready", func(c *gin.Context) {
		p, ok := ledger.(pinger)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	authGroup := r.Group("/")
	authGroup.Use(auth.APIKeyMiddleware(apiKeys))

	handlers.RegisterDetectionRoutes(authGroup, fwd, ledger, logger)
	handlers.RegisterSubmissionRoutes(authGroup, ledger)

	return r
}
