package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// RequestID keeps an incoming request id or assigns a new one
func RequestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

// NoCache is the default, individual end-points can override it
func NoCache(c *gin.Context) {
	c.Header("cache-control", "no-cache")
	c.Next()
}

type errorLogWriter struct {
	gin.ResponseWriter
	gc     *gin.Context
	logger zerolog.Logger
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		w.logger.Debug().
			Int("status", status).
			Str("path", w.gc.Request.URL.Path).
			Str("request_id", w.gc.GetString("request_id")).
			Bytes("body", b).
			Msg("error response")
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware doesn't work with GZIP
func ErrorLogMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &errorLogWriter{gc: c, ResponseWriter: c.Writer, logger: logger}
		c.Next()
	}
}
