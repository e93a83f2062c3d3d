package middleware

import (
	"context"
	"time"

	"castdeck/pkg/logger"
	"castdeck/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequestIDMiddleware tags every request with an ID for log correlation.
// An inbound X-Request-ID is kept so the panel UI can trace its own
// calls; otherwise a fresh one is generated. The ID travels on the
// request context, where the context logger picks it up.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}

		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "request_id", requestID))
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// RequestLoggerMiddleware logs every request through the context logger
// so entries carry the request ID and, once auth has run, the client
// identity.
func RequestLoggerMiddleware(cl *logger.ContextLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		cl.LogRequest(
			c.Request.Context(),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
		)
	}
}
