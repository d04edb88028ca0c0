package middleware

import (
	"net/http"

	"github.com/erp/skucatalog/internal/infrastructure/logger"
	"github.com/erp/skucatalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes bounds catalog request bodies
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit returns a middleware that limits request body size.
// maxBytes < 1 uses DefaultMaxBodyBytes.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes < 1 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				c.GetString(logger.RequestIDKey),
			))
			return
		}

		// Chunked bodies carry no Content-Length; cap the reader instead
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
