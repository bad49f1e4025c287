package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter/internal/shared/metrics"
	"coverletter/internal/shared/server/middleware"
	"coverletter/internal/shared/server/respond"
)

// NewEngine constructs a Gin engine with the shared middleware chain and the
// health and metrics routes registered.
func NewEngine(corsAllowOrigins []string) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(corsAllowOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
