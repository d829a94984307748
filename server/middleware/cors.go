package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration. A "*" entry in
// AllowedMethods or AllowedHeaders echoes whatever the preflight asks for,
// which keeps "allow all" working together with credentials.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" mapstructure:"max_age"` // seconds
}

// CORS sets CORS headers for allowed origins and answers preflight requests.
// The matched origin is echoed back, never "*".
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		c.Writer.Header().Add("Vary", "Origin")

		allowed := isAllowedOrigin(origin, cfg.AllowedOrigins)
		preflight := c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != ""

		if !allowed {
			if preflight {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Disallowed CORS origin"})
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		if cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if !preflight {
			c.Next()
			return
		}

		h.Set("Access-Control-Allow-Methods", listOrEcho(cfg.AllowedMethods, c.GetHeader("Access-Control-Request-Method")))
		if hdrs := listOrEcho(cfg.AllowedHeaders, c.GetHeader("Access-Control-Request-Headers")); hdrs != "" {
			h.Set("Access-Control-Allow-Headers", hdrs)
		}
		if cfg.MaxAge > 0 {
			h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}

func isAllowedOrigin(origin string, allowed []string) bool {
	return slices.Contains(allowed, origin) || slices.Contains(allowed, "*")
}

func listOrEcho(list []string, requested string) string {
	if len(list) == 0 || slices.Contains(list, "*") {
		return requested
	}
	return strings.Join(list, ", ")
}
