package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nogs0/bot-api-Vercel/internal/log"
)

const (
	// RequestIDHeader is read from and echoed on every request.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey    = "request_id"
)

// RequestIDMiddleware propagates or generates a request id and attaches it
// to the request context so log lines carry it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		ctx := log.WithAttrs(c.Request.Context(), slog.String(RequestIDKey, requestID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
