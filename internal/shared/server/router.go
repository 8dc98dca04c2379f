package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/shared/config"
	"devboard-backend/internal/shared/metrics"
	"devboard-backend/internal/shared/server/middleware"
	"devboard-backend/internal/shared/server/respond"
)

// RouteRegistrar mounts a feature's routes on the API group.
type RouteRegistrar interface {
	Register(api *gin.RouterGroup)
}

// Deps carries everything the router needs.
type Deps struct {
	Config   config.Config
	Handlers []RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(rateLimitConfig()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	for _, h := range deps.Handlers {
		h.Register(api)
	}

	r.GET("/metrics", metrics.Handler())

	return r
}

// rateLimitConfig throttles the expensive aggregate endpoint harder than the
// rest of the API.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.2, Burst: 3},
			"DEFAULT": {Rate: 5, Burst: 20},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.Request.URL.Path == "/api/v1/analyze_all" {
				return "ANALYZE"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
