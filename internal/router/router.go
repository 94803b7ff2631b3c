package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/caresync-api/internal/handler"
	"github.com/jwalitptl/caresync-api/internal/middleware"
	"github.com/jwalitptl/caresync-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	h        *handler.Handler
	handlers []Handler
	metrics  *metrics.Metrics
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	Timeout          time.Duration
	MaxBodyBytes     int64
	CORSConfig       middleware.CORSConfig
	SecurityConfig   middleware.SecurityConfig
}

// NewRouter builds the engine with the common middleware chain. m may be nil.
func NewRouter(h *handler.Handler, m *metrics.Metrics, config RouterConfig, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:   engine,
		h:        h,
		handlers: handlers,
		metrics:  m,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.SecurityHeaders(config.SecurityConfig),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(config.MaxBodyBytes),
	)

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	if r.h == nil {
		return
	}
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.metrics.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start).Seconds())
	}
}
