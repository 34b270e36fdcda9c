package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// accessLog writes one structured line per request once it completes.
func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// recovery turns a handler panic into a logged critical event and a
// problem response.
func (s *HTTPServer) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, p any) {
		s.logger.Critical(c.Request.Context(), "panic while handling request",
			"panic", fmt.Sprint(p), "path", c.Request.URL.Path)
		writeProblem(c, http.StatusInternalServerError)
	})
}
