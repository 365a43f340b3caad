// internal/server/handlers.go
package server

import (
	"context"
	"net/http"
	"time"

	"krixo-panel/internal/auth"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/dashboard"
	"krixo-panel/internal/hiring"
	"krixo-panel/internal/models"
	"krixo-panel/internal/profile"
	"krixo-panel/internal/requests"
	"krixo-panel/internal/session"

	"github.com/go-chi/chi/v5"
)

// --- Probes ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady checks the backend and client storage.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{"backend": "ok", "storage": "ok"}
	status := http.StatusOK
	if err := s.deps.API.Health(ctx); err != nil {
		checks["backend"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := s.deps.Store.Ping(ctx); err != nil {
		checks["storage"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{"checks": checks})
}

// --- Public forms ---

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	var doc map[string]interface{}
	if err := decodeBody(r, &doc); err != nil {
		s.fail(w, r, err, msgBadBody, nil)
		return
	}
	result, err := s.deps.Requests.Submit(r.Context(), doc)
	if err != nil {
		s.fail(w, r, err, apperrors.UserMessage(err, requests.MsgFailed), nil)
		return
	}
	s.ok(w, result, models.NewNotice(models.NoticeSuccess, result.Message))
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var form hiring.Form
	if err := decodeBody(r, &form); err != nil {
		s.fail(w, r, err, msgBadBody, nil)
		return
	}
	result, err := s.deps.Hiring.Apply(r.Context(), form)
	if err != nil {
		s.fail(w, r, err, hiring.FailureMessage(err), nil)
		return
	}
	s.ok(w, result, models.NewNotice(models.NoticeSuccess, result.Message))
}

// --- Auth ---

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := decodeBody(r, &creds); err != nil {
		s.fail(w, r, err, msgBadBody, nil)
		return
	}
	result, err := s.deps.Auth.AdminLogin(r.Context(), session.FromContext(r.Context()), creds)
	if err != nil {
		s.fail(w, r, err, apperrors.UserMessage(err, auth.MsgLoginFailed), nil)
		return
	}
	s.ok(w, result, models.NewNotice(models.NoticeSuccess, result.Message))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := decodeBody(r, &creds); err != nil {
		s.fail(w, r, err, msgBadBody, nil)
		return
	}
	result, err := s.deps.Auth.Login(r.Context(), session.FromContext(r.Context()), creds)
	if err != nil {
		s.fail(w, r, err, apperrors.UserMessage(err, auth.MsgLoginFailed), nil)
		return
	}
	s.ok(w, result, models.NewNotice(models.NoticeSuccess, result.Message))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if err := s.deps.Auth.Logout(r.Context(), sess); err != nil {
		s.fail(w, r, err, auth.MsgLoginFailed, nil)
		return
	}
	s.deps.Dashboards.Drop(sess.ClientID)
	s.ok(w, nil, models.NewNotice(models.NoticeSuccess, auth.MsgLoggedOut))
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.deps.Auth.Current(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		s.fail(w, r, err, auth.MsgLoginRequired, nil)
		return
	}
	s.ok(w, info, nil)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err, msgBadBody, nil)
		return
	}
	rec, err := s.deps.Auth.Register(r.Context(), body)
	if err != nil {
		s.fail(w, r, err, apperrors.UserMessage(err, auth.MsgLoginFailed), nil)
		return
	}
	s.ok(w, rec, nil)
}

// --- Admin dashboard ---

func (s *Server) board(r *http.Request) *dashboard.Board {
	return s.deps.Dashboards.Board(session.FromContext(r.Context()).ClientID)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request, board *dashboard.Board) {
	screenshot, err := session.FromContext(r.Context()).ScreenshotMode(r.Context())
	if err != nil {
		s.fail(w, r, apperrors.NewStorageFailedError("get screenshot mode", err), dashboard.LoadFailureMessage(nil), nil)
		return
	}
	notice, err := board.Load(r.Context(), screenshot)
	if err != nil {
		s.fail(w, r, err, dashboard.LoadFailureMessage(err), board.Snapshot())
		return
	}
	s.ok(w, board.Snapshot(), notice)
}

// handleDashboard returns the client's board, loading it on first view.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	board := s.board(r)
	if !board.Loaded() {
		s.load(w, r, board)
		return
	}
	s.ok(w, board.Snapshot(), nil)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.load(w, r, s.board(r))
}

func (s *Server) handleCommandDecision(approve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := s.board(r)
		decide := board.RejectCommand
		if approve {
			decide = board.ApproveCommand
		}
		notice, err := decide(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.fail(w, r, err, dashboard.DecisionFailureMessage(dashboard.EntityCommand, approve, err), board.Snapshot())
			return
		}
		s.ok(w, board.Snapshot(), notice)
	}
}

func (s *Server) handleWorkerDecision(approve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := s.board(r)
		decide := board.RejectWorker
		if approve {
			decide = board.ApproveWorker
		}
		notice, err := decide(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.fail(w, r, err, dashboard.DecisionFailureMessage(dashboard.EntityWorker, approve, err), board.Snapshot())
			return
		}
		s.ok(w, board.Snapshot(), notice)
	}
}

type screenshotRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleScreenshotMode(w http.ResponseWriter, r *http.Request) {
	var req screenshotRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, msgBadBody, nil)
		return
	}
	if err := session.FromContext(r.Context()).SetScreenshotMode(r.Context(), req.Enabled); err != nil {
		s.fail(w, r, apperrors.NewStorageFailedError("set screenshot mode", err), msgBadBody, nil)
		return
	}
	s.load(w, r, s.board(r))
}

// --- Worker pages ---

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())
	worker, err := s.deps.Profile.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err, apperrors.UserMessage(err, profile.MsgLoadFailed), nil)
		return
	}
	s.ok(w, worker, nil)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())
	id := chi.URLParam(r, "id")
	if !profile.CanView(principal, id) {
		s.fail(w, r, apperrors.NewUnauthorizedError(profile.MsgForbidden), profile.MsgForbidden, nil)
		return
	}
	rec, err := s.deps.Auth.Account(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, apperrors.UserMessage(err, profile.MsgLoadFailed), nil)
		return
	}
	s.ok(w, rec, nil)
}
