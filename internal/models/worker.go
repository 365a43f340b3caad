// internal/models/worker.go
package models

import "encoding/json"

// Acceptance is the tri-state decision on a worker application.
// The zero value is pending and encodes as JSON null.
type Acceptance int

const (
	AcceptancePending Acceptance = iota
	AcceptanceAccepted
	AcceptanceRejected
)

func (a Acceptance) String() string {
	switch a {
	case AcceptanceAccepted:
		return "accepted"
	case AcceptanceRejected:
		return "rejected"
	default:
		return "pending"
	}
}

func (a Acceptance) MarshalJSON() ([]byte, error) {
	switch a {
	case AcceptanceAccepted:
		return []byte("true"), nil
	case AcceptanceRejected:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (a *Acceptance) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v == nil:
		*a = AcceptancePending
	case *v:
		*a = AcceptanceAccepted
	default:
		*a = AcceptanceRejected
	}
	return nil
}

// DecidedAcceptance maps an approve/reject decision to the resulting acceptance.
func DecidedAcceptance(approve bool) Acceptance {
	if approve {
		return AcceptanceAccepted
	}
	return AcceptanceRejected
}

// Worker is a worker application/profile in canonical shape.
type Worker struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Position   string     `json:"position"`
	Experience string     `json:"experience"`
	Message    string     `json:"message"`
	IsAccepted Acceptance `json:"isaccepted"`
	CreatedAt  string     `json:"createdAt"`

	// Raw is the record as the backend returned it.
	Raw map[string]interface{} `json:"-"`
}

func (w *Worker) IsPending() bool {
	return w.IsAccepted == AcceptancePending
}
