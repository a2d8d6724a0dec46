package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/getmockd/mockmaster/pkg/ratelimit"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.healthHandler())
	r.GET("/metrics", gin.WrapH(s.metrics.Registry.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/types", s.typesHandler())

		apiGroup.GET("/schema", s.getSchemaHandler())
		apiGroup.PUT("/schema", s.putSchemaHandler())
		apiGroup.POST("/schema/reset", s.resetSchemaHandler())
		apiGroup.GET("/schema/openapi", s.openAPIHandler())
		apiGroup.POST("/schema/fields", s.addFieldHandler())
		apiGroup.PATCH("/schema/fields/:index", s.updateFieldHandler())
		apiGroup.DELETE("/schema/fields/:index", s.removeFieldHandler())

		limited := apiGroup.Group("", ratelimit.Middleware(s.limiter, func(c *gin.Context) {
			_ = s.metrics.RateLimited.Inc(c.FullPath())
		}))
		limited.POST("/generate", s.generateHandler())
		limited.POST("/export/:format", s.exportHandler())
	}

	return r
}

// requestLogger logs one line per request through the server's logger and
// records request metrics. Routes are labelled by their pattern so field
// indexes do not create new series.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		_ = s.metrics.RequestsTotal.Inc(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
		_ = s.metrics.RequestDuration.Observe(elapsed.Seconds(), c.Request.Method, route)

		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", elapsed,
		)
	}
}
