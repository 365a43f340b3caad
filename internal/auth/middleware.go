// internal/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/models"
	"krixo-panel/internal/session"
)

type principalKey struct{}

func reject(w http.ResponseWriter, err *apperrors.StandardError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.HTTPStatus(err.Code))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  err,
		"notice": map[string]string{"level": "error", "message": err.Message},
	})
}

// RequireAdmin lets through any client whose token passes the coarse admin guard.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil {
			reject(w, apperrors.NewUnauthorizedError(MsgLoginRequired))
			return
		}
		token, err := sess.Token(r.Context())
		if err != nil {
			reject(w, apperrors.NewStorageFailedError("get token", err))
			return
		}
		if !session.IsAdminAuthorized(token) {
			reject(w, apperrors.NewUnauthorizedError(MsgLoginRequired))
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r, sess.Classify(token))))
	})
}

// RequireAdminSession runs after RequireAdmin and admits only the exact admin
// sentinel. Other tokens that passed the coarse guard get the login prompt.
func RequireAdminSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok || !p.IsAdmin() {
			reject(w, apperrors.NewUnauthorizedError(MsgLoginRequired))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireWorker lets through worker and admin-authorized clients.
func RequireWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil {
			reject(w, apperrors.NewUnauthorizedError(MsgLoginRequired))
			return
		}
		token, err := sess.Token(r.Context())
		if err != nil {
			reject(w, apperrors.NewStorageFailedError("get token", err))
			return
		}
		p := sess.Classify(token)
		if p.Kind == models.PrincipalUnauthenticated {
			reject(w, apperrors.NewUnauthorizedError(MsgLoginRequired))
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r, p)))
	})
}

func withPrincipal(r *http.Request, p models.Principal) context.Context {
	return context.WithValue(r.Context(), principalKey{}, p)
}

// PrincipalFrom returns the principal set by RequireAdmin or RequireWorker.
func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	return p, ok
}
