package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/shared/config"
	"buildyourcv/internal/shared/metrics"
	"buildyourcv/internal/shared/server/middleware"
	"buildyourcv/internal/shared/server/respond"
)

// Rate limit groups.
const (
	groupDefault     = "DEFAULT"
	groupStructuring = "STRUCTURING"
)

// RouteRegistrar attaches a feature's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, registrars ...RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = 12 << 20

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: groupDefault,
			GroupFor:     rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				groupStructuring: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "llmConfigured": cfg.Configured()})
	})
	api.GET("/metrics", metrics.Handler())
	for _, reg := range registrars {
		reg.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup puts the routes that call the structuring service under
// their own limit.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return groupDefault
	}
	switch c.FullPath() {
	case "/api/v1/parse-cv", "/api/v1/pipeline":
		return groupStructuring
	}
	return groupDefault
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
