package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type SecurityConfig struct {
	// HSTSMaxAge is only sent when positive; the API usually runs on localhost.
	HSTSMaxAge     int
	FrameOptions   string
	ReferrerPolicy string
	CSP            string
}

// DefaultSecurityConfig suits a JSON-only API.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		FrameOptions:   "DENY",
		ReferrerPolicy: "no-referrer",
		CSP:            "default-src 'none'; frame-ancestors 'none'",
	}
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders(config SecurityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.HSTSMaxAge > 0 {
			c.Header("Strict-Transport-Security", fmt.Sprintf("max-age=%d", config.HSTSMaxAge))
		}
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Cache-Control", "no-store")
		if config.FrameOptions != "" {
			c.Header("X-Frame-Options", config.FrameOptions)
		}
		if config.ReferrerPolicy != "" {
			c.Header("Referrer-Policy", config.ReferrerPolicy)
		}
		if config.CSP != "" {
			c.Header("Content-Security-Policy", config.CSP)
		}
		c.Next()
	}
}
