package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origins. ALLOWED_ORIGINS is a
// comma-separated list; unset means local development defaults.
func CORSMiddleware() gin.HandlerFunc {
	allowed := strings.Split(getOrigins(), ",")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, a := range allowed {
			if strings.TrimSpace(a) == origin {
				c.Header("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func getOrigins() string {
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		return v
	}
	return "http://localhost:3000,http://localhost:5173"
}
