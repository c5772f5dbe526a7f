package server

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/jobs"
	"cv-backend/internal/services/health"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/server/middleware"
	"cv-backend/internal/shared/server/respond"
)

// RouterDeps groups dependencies required to build the router.
type RouterDeps struct {
	Config      config.Config
	JobsHandler *jobs.Handler
	Health      *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Config.RateLimitRPS > 0 {
		burst := deps.Config.RateLimitBurst
		if burst <= 0 {
			burst = int(math.Ceil(deps.Config.RateLimitRPS))
		}
		rule := middleware.RateLimitRule{Rate: deps.Config.RateLimitRPS, Burst: burst}
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        map[string]middleware.RateLimitRule{middleware.GroupRead: rule, middleware.GroupWrite: rule},
			DefaultGroup: middleware.GroupRead,
			GroupFor:     middleware.MethodGroup,
		}))
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.Health != nil {
		api.GET("/health", deps.Health.Handle)
	}
	if deps.JobsHandler != nil {
		r.GET("/", deps.JobsHandler.Welcome)
		deps.JobsHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Route not found", c.Request.Method+" "+c.Request.URL.Path)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
