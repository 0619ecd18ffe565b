package middleware

import (
	"log/slog"
	"time"

	"gamerate/backend/internal/logging"
	"gamerate/backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request once the handler chain finishes.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String(logging.FieldRequestID, RequestIDFrom(c)),
			slog.String(logging.FieldMethod, c.Request.Method),
			slog.String(logging.FieldPath, c.Request.URL.Path),
			slog.String(logging.FieldRoute, c.FullPath()),
			slog.Int(logging.FieldStatusCode, status),
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
			slog.String(logging.FieldClientIP, c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request complete", attrs...)
		case status >= 400:
			logger.Warn("request complete", attrs...)
		default:
			logger.Info("request complete", attrs...)
		}
	}
}

// Metrics feeds request counts and latency into the recorder, labelled by
// the matched route so path parameters do not explode cardinality.
func Metrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
