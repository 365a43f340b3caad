// internal/models/session.go
package models

// PrincipalKind classifies the holder of a session token.
type PrincipalKind string

const (
	PrincipalUnauthenticated PrincipalKind = "unauthenticated"
	PrincipalAdmin           PrincipalKind = "admin"
	// PrincipalAdminAuthorized passes the admin route guard without holding
	// the admin sentinel, e.g. a stale token left from an older sentinel.
	PrincipalAdminAuthorized PrincipalKind = "admin-authorized"
	PrincipalWorker          PrincipalKind = "worker"
)

// Principal is who the stored token says the client is.
// WorkerID is set only for PrincipalWorker.
type Principal struct {
	Kind     PrincipalKind `json:"kind"`
	WorkerID string        `json:"workerId,omitempty"`
}

func (p Principal) IsAdmin() bool {
	return p.Kind == PrincipalAdmin
}

func (p Principal) IsWorker() bool {
	return p.Kind == PrincipalWorker
}
