package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Middleware limits requests per client IP (as resolved by gin, which
// honours its trusted-proxy settings). A nil limiter passes everything.
// onLimit, when set, runs for every refused request.
func Middleware(l *Limiter, onLimit func(*gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		d := l.Allow(c.ClientIP())
		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset, 10))
		if d.Allowed {
			c.Next()
			return
		}

		h.Set("Retry-After", strconv.FormatInt(d.Reset, 10))
		if onLimit != nil {
			onLimit(c)
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
	}
}
