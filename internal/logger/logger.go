// Package logger wraps the zap logging library behind a process-wide sugared
// logger and provides an HTTP request-logging middleware.
package logger

import (
	"errors"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Log is the process-wide sugared logger. It must be initialized via Init()
// before use; the zero value is a nop logger so tests need no setup.
var Log = zap.NewNop().Sugar()

// Init initializes the global logger at the given level.
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes any buffered log entries. Call on shutdown.
func Sync() error {
	if err := Log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// RequestLogger wraps an http.Handler and logs method, path, status,
// duration, and response size for every request.
func RequestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rd := &responseData{}
		lw := loggingResponseWriter{ResponseWriter: w, responseData: rd}
		h.ServeHTTP(&lw, r)

		Log.Infow("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", rd.status,
			"duration", time.Since(start),
			"size", rd.size,
		)
	})
}
