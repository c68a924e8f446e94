package server

import (
	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/render"
	"curriculum-backend/internal/shared/config"
	"curriculum-backend/internal/shared/metrics"
	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/telemetry"
)

// RouteRegistrar is implemented by feature handlers.
type RouteRegistrar interface {
	RegisterRoutes(r gin.IRouter)
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, handlers ...RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		telemetry.Warn("config.invalid_trusted_proxies", map[string]any{"error": err})
		_ = r.SetTrustedProxies(nil)
	}
	r.SetHTMLTemplate(render.Templates())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}, nil),
	)

	r.GET("/metrics", metrics.Handler())
	for _, h := range handlers {
		h.RegisterRoutes(r)
	}
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
