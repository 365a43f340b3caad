// internal/auth/service.go
package auth

import (
	"context"
	"crypto/subtle"

	"krixo-panel/internal/backend"
	"krixo-panel/internal/common/config"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/normalizer"
	"krixo-panel/internal/session"
)

type Service struct {
	api    backend.API
	admin  config.AdminConfig
	logger logger.Logger
}

func NewService(api backend.API, admin config.AdminConfig, log logger.Logger) *Service {
	return &Service{
		api:    api,
		admin:  admin,
		logger: log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Sentinel is the token stored on admin login.
func (s *Service) Sentinel() string {
	return s.admin.Sentinel
}

func (s *Service) isAdmin(c Credentials) bool {
	for _, pair := range s.admin.Credentials {
		emailOK := subtle.ConstantTimeCompare([]byte(pair.Email), []byte(c.Email)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pair.Password), []byte(c.Password)) == 1
		if emailOK && passOK {
			return true
		}
	}
	return false
}

// AdminLogin checks the configured admin pairs and stores the admin sentinel.
func (s *Service) AdminLogin(ctx context.Context, sess *session.Session, c Credentials) (*LoginResult, error) {
	if !s.isAdmin(c) {
		s.logger.Warn("admin login rejected", map[string]interface{}{"email": c.Email})
		return nil, apperrors.NewUnauthorizedError(MsgBadAdminCredentials)
	}
	if err := sess.SetToken(ctx, s.admin.Sentinel); err != nil {
		return nil, apperrors.NewStorageFailedError("set token", err)
	}
	s.logger.Info("admin logged in", map[string]interface{}{"clientId": sess.ClientID})
	return &LoginResult{
		Principal: session.Classify(s.admin.Sentinel, s.admin.Sentinel),
		Redirect:  "/admin",
		Message:   MsgAdminLoggedIn,
	}, nil
}

// Login is the shared login form: admin pairs first, then worker
// credentials checked by the backend through /Regestration.
func (s *Service) Login(ctx context.Context, sess *session.Session, c Credentials) (*LoginResult, error) {
	if s.isAdmin(c) {
		result, err := s.AdminLogin(ctx, sess, c)
		if err != nil {
			return nil, err
		}
		result.Message = MsgAdminViaWorkerLogin
		return result, nil
	}
	return s.WorkerLogin(ctx, sess, c)
}

// WorkerLogin stores worker-<id> and the returned record when the backend
// answers with a record that carries an id. When /Regestration rejects the
// request or answers without an id, the worker is looked up by e-mail and
// the stored password is compared instead.
func (s *Service) WorkerLogin(ctx context.Context, sess *session.Session, c Credentials) (*LoginResult, error) {
	var record normalizer.RawRecord
	payload, err := s.api.Register(ctx, map[string]interface{}{
		"email":    c.Email,
		"password": c.Password,
	})
	switch {
	case err == nil:
		record, _ = normalizer.FirstRecord(payload)
	case apperrors.HasCode(err, apperrors.ErrCodeBackendRequestFailed):
		s.logger.Warn("registration endpoint refused login, checking worker list", map[string]interface{}{"error": err.Error()})
	default:
		s.logger.Warn("worker login failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	id := record.Text("", "id")
	if id == "" {
		if record, err = s.lookupWorker(ctx, c); err != nil {
			return nil, err
		}
		id = record.Text("", "id")
	}
	if id == "" {
		return nil, apperrors.NewUnauthorizedError(MsgBadWorkerLogin)
	}
	record = withoutPassword(record)

	token := session.WorkerToken(id)
	if err := sess.SetToken(ctx, token); err != nil {
		return nil, apperrors.NewStorageFailedError("set token", err)
	}
	if err := sess.SetWorkerData(ctx, record); err != nil {
		return nil, apperrors.NewStorageFailedError("set worker data", err)
	}

	s.logger.Info("worker logged in", map[string]interface{}{"workerId": id})
	return &LoginResult{
		Principal: session.Classify(token, s.admin.Sentinel),
		Redirect:  "/worker/" + id,
		Message:   MsgWorkerLoggedIn,
		Worker:    record,
	}, nil
}

// AuthenticateWorker looks a worker up by e-mail. It does not check a password.
func (s *Service) AuthenticateWorker(ctx context.Context, email string) (normalizer.RawRecord, error) {
	payload, err := s.api.GetWorkers(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := normalizer.FindByEmail(normalizer.ExtractRecords(payload), email)
	if !ok {
		return nil, apperrors.NewNotFoundError(MsgEmailNotFound, "email: "+email)
	}
	return rec, nil
}

// lookupWorker finds the worker by e-mail and checks the password stored on
// the worker record.
func (s *Service) lookupWorker(ctx context.Context, c Credentials) (normalizer.RawRecord, error) {
	record, err := s.AuthenticateWorker(ctx, c.Email)
	if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		return nil, apperrors.NewUnauthorizedError(MsgBadWorkerLogin)
	}
	if err != nil {
		return nil, err
	}
	stored := record.Text("", "password")
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(c.Password)) != 1 {
		s.logger.Warn("worker password mismatch", map[string]interface{}{"email": c.Email})
		return nil, apperrors.NewUnauthorizedError(MsgBadWorkerLogin)
	}
	return record, nil
}

func withoutPassword(record normalizer.RawRecord) normalizer.RawRecord {
	out := make(normalizer.RawRecord, len(record))
	for k, v := range record {
		if k != "password" {
			out[k] = v
		}
	}
	return out
}

// Register forwards a registration body to the backend unchanged.
func (s *Service) Register(ctx context.Context, body map[string]interface{}) (normalizer.RawRecord, error) {
	payload, err := s.api.Register(ctx, body)
	if err != nil {
		return nil, err
	}
	rec, _ := normalizer.FirstRecord(payload)
	return rec, nil
}

func (s *Service) Account(ctx context.Context, id string) (normalizer.RawRecord, error) {
	payload, err := s.api.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	rec, ok := normalizer.FirstRecord(payload)
	if !ok {
		return nil, apperrors.NewNotFoundError("الحساب غير موجود", "account: "+id)
	}
	return rec, nil
}

// Logout clears the token and any cached worker data.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	if err := sess.ClearToken(ctx); err != nil {
		return apperrors.NewStorageFailedError("clear token", err)
	}
	s.logger.Info("logged out", map[string]interface{}{"clientId": sess.ClientID})
	return nil
}

// Current reports the session as the stored values describe it.
func (s *Service) Current(ctx context.Context, sess *session.Session) (*SessionInfo, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return nil, apperrors.NewStorageFailedError("get token", err)
	}
	screenshot, err := sess.ScreenshotMode(ctx)
	if err != nil {
		return nil, apperrors.NewStorageFailedError("get screenshot mode", err)
	}
	info := &SessionInfo{
		Principal:       session.Classify(token, s.admin.Sentinel),
		AdminAuthorized: session.IsAdminAuthorized(token),
		ScreenshotMode:  screenshot,
	}
	if info.Principal.IsWorker() {
		data, err := sess.WorkerData(ctx)
		if err != nil {
			s.logger.Warn("cached worker data unreadable", map[string]interface{}{"error": err.Error()})
		}
		info.Worker = data
	}
	return info, nil
}
