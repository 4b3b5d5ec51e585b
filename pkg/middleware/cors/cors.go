package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	allowHeaders = "Authorization, Content-Type, X-Requested-With, X-Request-ID"
	maxAge       = "600"
)

// New returns CORS middleware restricted to the configured origins. With
// no origins configured every origin is allowed, which is the local
// development posture against the frontend dev server.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}
	allowAll := len(allowed) == 0

	return func(c *gin.Context) {
		h := c.Writer.Header()

		origin := c.GetHeader("Origin")
		switch {
		case origin == "" && allowAll:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			if _, ok := allowed[strings.TrimRight(origin, "/")]; ok || allowAll {
				h.Set("Access-Control-Allow-Origin", origin)
			}
		}

		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
