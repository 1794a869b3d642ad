package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context keys for middleware
type contextKey string

const (
	RequestIDKey  contextKey = "request_id"
	APIVersionKey contextKey = "api_version"
)

// APIVersionHeader carries the requested minor API version, either as a bare
// minor number ("2") or as major.minor ("1.2").
const APIVersionHeader = "X-API-Version"

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs HTTP requests and responses with slog
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			requestID, _ := r.Context().Value(RequestIDKey).(string)
			logger.Info("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"duration", time.Since(start),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequireAPIVersion rejects requests below the minimum minor API version
// with 406 Not Acceptable. Requests without a version header are accepted at
// the minimum version.
func RequireAPIVersion(minMinor int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(APIVersionHeader)
			minor := minMinor
			if raw != "" {
				parsed, err := parseMinorVersion(raw)
				if err != nil {
					writeError(w, r, http.StatusBadRequest, "invalid_version", "Invalid "+APIVersionHeader+" header")
					return
				}
				minor = parsed
			}

			if minor < minMinor {
				writeError(w, r, http.StatusNotAcceptable, "version_not_acceptable",
					"The requested API version is not supported by this endpoint")
				return
			}

			ctx := context.WithValue(r.Context(), APIVersionKey, minor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseMinorVersion accepts "minor" or "major.minor"
func parseMinorVersion(raw string) (int, error) {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		if _, err := strconv.Atoi(raw[:i]); err != nil {
			return 0, err
		}
		raw = raw[i+1:]
	}
	return strconv.Atoi(raw)
}
