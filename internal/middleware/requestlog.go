package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luvi2001/yfcapp/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestLog tags each request with an id, hands a logger carrying it to
// the handlers and logs one line when the request finishes.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)

		l := slog.Default().With("rid", rid)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"ms", time.Since(start).Milliseconds(),
		}
		if id, ok := IdentityFrom(c); ok {
			attrs = append(attrs, "user", id.UserName)
		}
		if c.Writer.Status() >= 500 {
			l.Error("http.request", attrs...)
			return
		}
		l.Info("http.request", attrs...)
	}
}
