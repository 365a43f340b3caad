package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

// Middleware attaches a Session to every request, issuing a client id cookie
// on first contact. Stored tokens are classified against sentinel.
func Middleware(store Storage, cookieName string, secure bool, sentinel string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if _, perr := uuid.Parse(c.Value); perr == nil {
					clientID = c.Value
				}
			}
			if clientID == "" {
				clientID = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    clientID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSession(r.Context(), New(clientID, store).WithSentinel(sentinel))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request's session, nil when Middleware did not run.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
