// Package middlewareinternal provides HTTP client middleware for the
// management agent transport.
package middlewareinternal

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// LoggingTransport wraps next and logs every request at debug level.
func LoggingTransport(logger *zap.SugaredLogger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		uri := r.URL.Redacted()
		method := r.Method

		resp, err := next.RoundTrip(r)
		duration := time.Since(start)

		if err != nil {
			logger.Debugw("agent request failed",
				"uri", uri,
				"method", method,
				"duration", duration,
				"error", err,
			)
			return nil, err
		}

		logger.Debugw("agent request",
			"uri", uri,
			"method", method,
			"status", resp.StatusCode,
			"duration", duration,
			"size", resp.ContentLength,
		)
		return resp, nil
	})
}

// BasicAuth sets basic credentials on every request passing through next.
// An empty username disables it.
func BasicAuth(username, password string, next http.RoundTripper) http.RoundTripper {
	if username == "" {
		return next
	}
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		r = r.Clone(r.Context())
		r.SetBasicAuth(username, password)
		return next.RoundTrip(r)
	})
}
