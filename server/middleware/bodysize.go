package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/audioviz/util"
)

const defaultMaxBodySize = 50 << 20

// BodySizeLimit caps the request body at maxSize ("50MB", "512KB").
// Reading past the cap fails with *http.MaxBytesError.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		c.Next()
	}
}
