package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drumflow/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Scan
// payloads are a single barcode; anything large is not a scanner.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("ERR_REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		// Limit streaming bodies that omit Content-Length
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
