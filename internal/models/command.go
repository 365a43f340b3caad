// internal/models/command.go
package models

// CommandStatus is the lifecycle state of a service request.
type CommandStatus string

const (
	CommandPending  CommandStatus = "pending"
	CommandApproved CommandStatus = "approved"
	CommandRejected CommandStatus = "rejected"
)

// Command is a customer service request (moving job) in canonical shape.
type Command struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Services    []string      `json:"services"`
	Workers     string        `json:"workers"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	Floor       string        `json:"floor"`
	ItemType    string        `json:"itemType"`
	Price       string        `json:"price"`
	Status      CommandStatus `json:"status"`
	CreatedAt   string        `json:"createdAt"`
	Description string        `json:"description"`

	// BackendID is the identifier as the backend sent it (number or string).
	BackendID interface{} `json:"-"`
}

// IsPending reports whether the command still awaits an admin decision.
func (c *Command) IsPending() bool {
	return c.Status == CommandPending
}

// DecidedStatus maps an approve/reject decision to the resulting status.
func DecidedStatus(approve bool) CommandStatus {
	if approve {
		return CommandApproved
	}
	return CommandRejected
}
