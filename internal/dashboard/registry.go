// internal/dashboard/registry.go
package dashboard

import (
	"sync"

	"krixo-panel/internal/backend"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/common/metrics"
	"krixo-panel/internal/normalizer"
	"krixo-panel/internal/notify"
)

// Registry keeps one Board per client id in process memory.
type Registry struct {
	api        backend.API
	normalizer *normalizer.Normalizer
	notifier   notify.Notifier
	logger     logger.Logger

	mu     sync.Mutex
	boards map[string]*Board
}

func NewRegistry(api backend.API, n *normalizer.Normalizer, notifier notify.Notifier, log logger.Logger) *Registry {
	return &Registry{
		api:        api,
		normalizer: n,
		notifier:   notifier,
		logger:     log.WithFields(map[string]interface{}{"component": "dashboard"}),
		boards:     make(map[string]*Board),
	}
}

// Board returns the client's board, creating an empty one on first use.
func (r *Registry) Board(clientID string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boards[clientID]
	if !ok {
		b = NewBoard(r.api, r.normalizer, r.notifier,
			r.logger.WithFields(map[string]interface{}{"clientId": clientID}))
		r.boards[clientID] = b
		metrics.DashboardBoards.Set(float64(len(r.boards)))
	}
	return b
}

// Drop forgets the client's board, on logout.
func (r *Registry) Drop(clientID string) {
	r.mu.Lock()
	delete(r.boards, clientID)
	metrics.DashboardBoards.Set(float64(len(r.boards)))
	r.mu.Unlock()
}
