package http

import (
	"go-weather/pkg/log"

	"go.uber.org/zap"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called after receiving a 2xx response
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after a transport error or a non-2xx response
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)
}

// ZapHTTPLogger writes outbound request logs through zap.
type ZapHTTPLogger struct {
	logger *zap.Logger
}

// NewZapHTTPLogger returns an HTTPLogger backed by logger, or by the process logger when nil.
func NewZapHTTPLogger(logger *zap.Logger) *ZapHTTPLogger {
	if logger == nil {
		logger = log.Named("http-client")
	}
	return &ZapHTTPLogger{logger: logger}
}

func (l *ZapHTTPLogger) LogRequest(method, url string, _ map[string]string, _ string) {
	l.logger.Debug("outbound request",
		zap.String("method", method),
		zap.String("url", url))
}

func (l *ZapHTTPLogger) LogResponseSuccess(method, url string, _ map[string]string, _ string, httpStatus int, _ string, latency int64) {
	l.logger.Debug("outbound response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l *ZapHTTPLogger) LogResponseError(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64, err error) {
	l.logger.Warn("outbound request failed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.String("response", truncate(responseBody, 512)),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
