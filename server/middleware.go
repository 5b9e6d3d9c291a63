package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amonks/musiclib/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID tags each request with the caller's X-Request-ID, or a fresh
// uuid if there wasn't one, and echoes it in the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields(
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(logger.EventRequest, "request failed", fields)
		case status >= http.StatusBadRequest:
			logger.Warn(logger.EventRequest, "request rejected", fields)
		default:
			logger.Info(logger.EventRequest, "request", fields)
		}
	}
}

// recovery turns a panic into a 500: empty for the API, the error page
// otherwise.
func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error(logger.EventPanic, "recovered from panic", logger.Fields(
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		))
		if isAPI(c) {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Abort()
		renderError(c, http.StatusInternalServerError)
	})
}
