// Package normalizer maps the backend's inconsistent command and worker
// records onto the canonical models.
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"krixo-panel/internal/models"

	"github.com/google/uuid"
)

// TimestampLayout is ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Normalizer struct {
	now   func() time.Time
	newID func() string
}

type Option func(*Normalizer)

// WithClock fixes the clock used for generated ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithIDSource replaces the random suffix of generated ids.
func WithIDSource(newID func() string) Option {
	return func(n *Normalizer) { n.newID = newID }
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) placeholderID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, n.now().UnixMilli(), n.newID())
}

func (n *Normalizer) timestamp(r RawRecord) string {
	return r.Text(n.now().UTC().Format(TimestampLayout), "createdAt")
}

// Command normalizes one command record.
func (n *Normalizer) Command(r RawRecord) models.Command {
	backendID, hasID := r.first("id", "_id")
	id := Stringify(backendID)
	if !hasID {
		id = n.placeholderID("cmd")
	}

	return models.Command{
		ID:          id,
		Name:        r.Text(Placeholder, "fullname", "name", "firstName"),
		Phone:       r.Text(Placeholder, "number", "phone"),
		Email:       r.Text("", "email"),
		Floor:       r.Text(Placeholder, "floor", "flor"),
		ItemType:    r.Text(Placeholder, "itemType", "itemtype"),
		Services:    services(r),
		Workers:     r.Text(Placeholder, "workers"),
		Start:       r.Text(Placeholder, "start"),
		End:         r.Text(Placeholder, "end", "distination"),
		Price:       r.Text("", "price", "prise"),
		Status:      models.CommandStatus(r.Text(string(models.CommandPending), "status")),
		CreatedAt:   n.timestamp(r),
		Description: r.Text("", "description"),
		BackendID:   backendID,
	}
}

func services(r RawRecord) []string {
	if list, ok := r["services"].([]interface{}); ok {
		out := make([]string, len(list))
		for i, item := range list {
			out[i] = Stringify(item)
		}
		return out
	}
	if list, ok := r["services"].([]string); ok {
		return append([]string(nil), list...)
	}

	if s, ok := r["service"].(string); ok {
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{r.Text(Placeholder, "service")}
}

// Worker normalizes one worker record.
func (n *Normalizer) Worker(r RawRecord) models.Worker {
	id := r.Text("", "id", "_id")
	if id == "" {
		id = n.placeholderID("worker")
	}

	accepted, present := r["isaccepted"]
	return models.Worker{
		ID:         id,
		Name:       r.Text(Placeholder, "fillname", "fullname", "name", "fname"),
		Email:      r.Text(Placeholder, "email"),
		Phone:      r.Text(Placeholder, "number", "phone"),
		Position:   r.Text(Placeholder, "position"),
		Experience: r.Text(Placeholder, "experience"),
		Message:    r.Text("", "message"),
		IsAccepted: CoerceAcceptance(accepted, present),
		CreatedAt:  n.timestamp(r),
		Raw:        r,
	}
}

// CoerceAcceptance maps the backend's isaccepted value onto the tri-state:
// a missing key and "" are pending, true and "true" are accepted, anything
// else is rejected. An explicit null is present, so it is rejected.
func CoerceAcceptance(v interface{}, present bool) models.Acceptance {
	if !present {
		return models.AcceptancePending
	}
	switch t := v.(type) {
	case string:
		switch t {
		case "":
			return models.AcceptancePending
		case "true":
			return models.AcceptanceAccepted
		}
	case bool:
		if t {
			return models.AcceptanceAccepted
		}
	}
	return models.AcceptanceRejected
}

// Commands extracts and normalizes every command in a backend payload.
func (n *Normalizer) Commands(p Payload) []models.Command {
	records := ExtractRecords(p)
	out := make([]models.Command, len(records))
	for i, r := range records {
		out[i] = n.Command(r)
	}
	return out
}

// Workers extracts and normalizes every worker in a backend payload.
func (n *Normalizer) Workers(p Payload) []models.Worker {
	records := ExtractRecords(p)
	out := make([]models.Worker, len(records))
	for i, r := range records {
		out[i] = n.Worker(r)
	}
	return out
}
