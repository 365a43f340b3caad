// Package dashboard holds the admin view of pending commands and worker
// applications and carries out approve/reject decisions against the backend.
package dashboard

import (
	"context"
	"strconv"
	"sync"

	"krixo-panel/internal/backend"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/common/metrics"
	"krixo-panel/internal/models"
	"krixo-panel/internal/normalizer"
	"krixo-panel/internal/notify"
)

// Counts are the pending totals shown as tab badges.
type Counts struct {
	PendingCommands int `json:"pendingCommands"`
	PendingWorkers  int `json:"pendingWorkers"`
}

// Snapshot is a copy of the board state at one point in time.
type Snapshot struct {
	Commands     []models.Command `json:"commands"`
	Workers      []models.Worker  `json:"workers"`
	Loading      bool             `json:"loading"`
	BackendError bool             `json:"backendError"`
	Demo         bool             `json:"demo"`
	Counts       Counts           `json:"counts"`
}

// Board is one admin client's snapshot. The mutex guards the lists only and
// is never held across a backend call.
type Board struct {
	api        backend.API
	normalizer *normalizer.Normalizer
	notifier   notify.Notifier
	logger     logger.Logger

	mu           sync.Mutex
	commands     []models.Command
	workers      []models.Worker
	inFlight     int
	backendError bool
	demo         bool
	loaded       bool
}

func NewBoard(api backend.API, n *normalizer.Normalizer, notifier notify.Notifier, log logger.Logger) *Board {
	return &Board{
		api:        api,
		normalizer: n,
		notifier:   notifier,
		logger:     log,
	}
}

// Load refreshes both lists. In screenshot mode the demonstration data is
// shown and the backend is not contacted.
func (b *Board) Load(ctx context.Context, screenshotMode bool) (*models.Notice, error) {
	if screenshotMode {
		b.replace(SampleCommands(b.normalizer), SampleWorkers(b.normalizer), true)
		return nil, nil
	}

	var notice *models.Notice
	demo := false

	cmdPayload, err := b.api.GetCommands(ctx)
	var commands []models.Command
	switch {
	case err == nil:
		commands = b.normalizer.Commands(cmdPayload)
	case apperrors.IsKnownBackendDefect(err):
		b.logger.Warn("backend database defect, showing demonstration commands", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.DemoFallbacks.Inc()
		commands = SampleCommands(b.normalizer)
		notice = models.NewNotice(models.NoticeWarning, MsgDemoFallback)
		demo = true
	default:
		b.markUnreachable(err)
		return nil, err
	}

	workerPayload, err := b.api.GetWorkers(ctx)
	if err != nil {
		b.markUnreachable(err)
		return nil, err
	}

	b.replace(commands, b.normalizer.Workers(workerPayload), demo)
	b.logger.Info("dashboard loaded", map[string]interface{}{
		"commands": len(commands),
		"demo":     demo,
	})
	return notice, nil
}

func (b *Board) replace(commands []models.Command, workers []models.Worker, demo bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = commands
	b.workers = workers
	b.backendError = false
	b.demo = demo
	b.loaded = true
}

func (b *Board) markUnreachable(err error) {
	b.logger.Error("dashboard load failed", map[string]interface{}{"error": err.Error()})
	b.mu.Lock()
	b.backendError = true
	b.mu.Unlock()
}

// ApproveCommand marks a pending command approved once the backend accepts it.
func (b *Board) ApproveCommand(ctx context.Context, id string) (*models.Notice, error) {
	return b.decideCommand(ctx, id, true)
}

func (b *Board) RejectCommand(ctx context.Context, id string) (*models.Notice, error) {
	return b.decideCommand(ctx, id, false)
}

func (b *Board) ApproveWorker(ctx context.Context, id string) (*models.Notice, error) {
	return b.decideWorker(ctx, id, true)
}

func (b *Board) RejectWorker(ctx context.Context, id string) (*models.Notice, error) {
	return b.decideWorker(ctx, id, false)
}

func (b *Board) decideCommand(ctx context.Context, id string, approve bool) (*models.Notice, error) {
	b.mu.Lock()
	i := b.commandIndex(id)
	if i < 0 {
		b.mu.Unlock()
		return nil, apperrors.NewNotFoundError(MsgCommandNotFound, "command: "+id)
	}
	cmd := b.commands[i]
	if !cmd.IsPending() {
		b.mu.Unlock()
		return nil, apperrors.NewInvalidTransitionError(EntityCommand, id, string(cmd.Status))
	}
	b.inFlight++
	b.mu.Unlock()
	defer b.settle()

	var ref interface{} = cmd.ID
	if cmd.BackendID != nil {
		ref = cmd.BackendID
	}
	_, err := b.api.UpdateCommand(ctx, map[string]interface{}{
		"commandId":  ref,
		"isaccepted": strconv.FormatBool(approve),
	})
	if err != nil {
		metrics.Decisions.WithLabelValues(EntityCommand, decisionLabel(approve), "failed").Inc()
		b.logger.Warn("command decision failed", map[string]interface{}{
			"commandId": id,
			"approve":   approve,
			"error":     err.Error(),
		})
		return nil, err
	}

	status := models.DecidedStatus(approve)
	b.mu.Lock()
	if j := b.commandIndex(id); j >= 0 {
		b.commands[j].Status = status
		cmd = b.commands[j]
	}
	b.mu.Unlock()
	metrics.Decisions.WithLabelValues(EntityCommand, decisionLabel(approve), "ok").Inc()

	if b.notifier != nil {
		if _, err := b.notifier.NotifyCommandDecision(ctx, cmd, approve); err != nil {
			b.logger.Error("decision notification failed", map[string]interface{}{
				"commandId": id,
				"error":     err.Error(),
			})
		}
	}

	b.logger.Info("command decided", map[string]interface{}{"commandId": id, "status": string(status)})
	return models.NewNotice(models.NoticeSuccess, successMessages[EntityCommand][approve]), nil
}

func (b *Board) decideWorker(ctx context.Context, id string, approve bool) (*models.Notice, error) {
	b.mu.Lock()
	i := b.workerIndex(id)
	if i < 0 {
		b.mu.Unlock()
		return nil, apperrors.NewNotFoundError(MsgWorkerNotFound, "worker: "+id)
	}
	w := b.workers[i]
	if !w.IsPending() {
		b.mu.Unlock()
		return nil, apperrors.NewInvalidTransitionError(EntityWorker, id, w.IsAccepted.String())
	}
	b.inFlight++
	b.mu.Unlock()
	defer b.settle()

	if _, err := b.api.UpdateWorker(ctx, WorkerUpdate(w, approve)); err != nil {
		metrics.Decisions.WithLabelValues(EntityWorker, decisionLabel(approve), "failed").Inc()
		b.logger.Warn("worker decision failed", map[string]interface{}{
			"workerId": id,
			"approve":  approve,
			"error":    err.Error(),
		})
		return nil, err
	}

	b.mu.Lock()
	if j := b.workerIndex(id); j >= 0 {
		b.workers[j].IsAccepted = models.DecidedAcceptance(approve)
	}
	b.mu.Unlock()
	metrics.Decisions.WithLabelValues(EntityWorker, decisionLabel(approve), "ok").Inc()

	b.logger.Info("worker decided", map[string]interface{}{"workerId": id, "approve": approve})
	return models.NewNotice(models.NoticeSuccess, successMessages[EntityWorker][approve]), nil
}

// WorkerUpdate builds the full /UpdateWorker body from the record the backend
// sent, with isaccepted overwritten.
func WorkerUpdate(w models.Worker, approve bool) map[string]interface{} {
	raw := normalizer.RawRecord(w.Raw)

	var id interface{} = w.ID
	if v, ok := raw["id"]; ok && normalizer.Truthy(v) {
		id = v
	}

	body := map[string]interface{}{
		"id":         id,
		"fullname":   raw.Text("", "fullname", "fillname", "name"),
		"number":     raw.Text("", "number", "phone"),
		"email":      raw.Text("", "email"),
		"position":   raw.Text("", "position"),
		"experience": raw.Text("", "experience"),
		"message":    raw.Text("", "message"),
		"isaccepted": strconv.FormatBool(approve),
	}
	if pw, ok := raw["password"]; ok {
		body["password"] = pw
	}
	return body
}

func (b *Board) settle() {
	b.mu.Lock()
	b.inFlight--
	b.mu.Unlock()
}

func (b *Board) commandIndex(id string) int {
	for i := range b.commands {
		if b.commands[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) workerIndex(id string) int {
	for i := range b.workers {
		if b.workers[i].ID == id {
			return i
		}
	}
	return -1
}

// Loaded reports whether a load has ever succeeded.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Loading reports whether any decision is still waiting on the backend.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inFlight > 0
}

func (b *Board) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.countsLocked()
}

func (b *Board) countsLocked() Counts {
	var c Counts
	for i := range b.commands {
		if b.commands[i].IsPending() {
			c.PendingCommands++
		}
	}
	for i := range b.workers {
		if b.workers[i].IsPending() {
			c.PendingWorkers++
		}
	}
	return c
}

// Snapshot copies the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Commands:     append([]models.Command{}, b.commands...),
		Workers:      append([]models.Worker{}, b.workers...),
		Loading:      b.inFlight > 0,
		BackendError: b.backendError,
		Demo:         b.demo,
		Counts:       b.countsLocked(),
	}
}
