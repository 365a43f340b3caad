// internal/server/middleware.go
package server

import (
	"net/http"
	"strconv"
	"time"

	"krixo-panel/internal/backend"
	"krixo-panel/internal/common/metrics"
	"krixo-panel/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// observe counts and logs every request by its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.logger.Debug("request served", map[string]interface{}{
			"method":     r.Method,
			"route":      route,
			"status":     status,
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  middleware.GetReqID(r.Context()),
		})
	})
}

// forwardToken makes the session token available to outbound backend calls.
func (s *Server) forwardToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil {
			next.ServeHTTP(w, r)
			return
		}
		token, err := sess.Token(r.Context())
		if err != nil {
			s.logger.Warn("session token unreadable", map[string]interface{}{"error": err.Error()})
			next.ServeHTTP(w, r)
			return
		}
		if token != "" {
			r = r.WithContext(backend.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
