// Package session keeps each browser client's stored values on the server
// and classifies the stored auth token.
package session

import (
	"strings"

	"krixo-panel/internal/models"
)

const (
	// AdminToken is the default admin sentinel written on admin login.
	AdminToken = "admin-token"

	workerPrefix = "worker-"
)

// Classify derives the principal from a stored token. Only the exact
// sentinel is Admin; other non-worker values merely pass the coarse route
// guard. This is not authentication; the backend is the authority.
func Classify(token, sentinel string) models.Principal {
	if sentinel == "" {
		sentinel = AdminToken
	}
	switch {
	case token == "":
		return models.Principal{Kind: models.PrincipalUnauthenticated}
	case token == sentinel:
		return models.Principal{Kind: models.PrincipalAdmin}
	case strings.HasPrefix(token, workerPrefix):
		id := token[len(workerPrefix):]
		if id == "" {
			return models.Principal{Kind: models.PrincipalUnauthenticated}
		}
		return models.Principal{Kind: models.PrincipalWorker, WorkerID: id}
	default:
		return models.Principal{Kind: models.PrincipalAdminAuthorized}
	}
}

// IsAdminAuthorized is the coarse route guard: any non-empty token that is
// not a worker token passes.
func IsAdminAuthorized(token string) bool {
	return token != "" && !strings.HasPrefix(token, workerPrefix)
}

// WorkerToken builds the token stored after a worker login.
func WorkerToken(id string) string {
	return workerPrefix + id
}
