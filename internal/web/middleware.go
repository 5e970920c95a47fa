package web

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bookshelf-web/internal/model"
	"github.com/bookshelf-web/internal/session"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// requireSession gates a page on a decodable stored credential. Missing
// or undecodable credentials redirect to the login page with a
// notification; no API request is issued for the gated page.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := session.Token(r)
		if !ok {
			h.redirectFlash(w, r, "/login", flashError, "Please login first")
			return
		}
		claims, err := session.Decode(token)
		if err != nil {
			h.redirectFlash(w, r, "/login", flashError, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin additionally checks the role claim. A missing session and
// a wrong role get distinct messages but both redirect.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := session.Token(r)
		if !ok {
			h.redirectFlash(w, r, "/login", flashError, "Please login first")
			return
		}
		claims, err := session.Decode(token)
		if err != nil || !claims.IsAdmin() {
			h.redirectFlash(w, r, "/", flashError, "Access denied")
			return
		}
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// claimsFrom returns the claims a gating middleware stored, or nil on
// ungated pages.
func claimsFrom(ctx context.Context) *model.SessionClaims {
	claims, _ := ctx.Value(claimsContextKey).(*model.SessionClaims)
	return claims
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)

			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}
