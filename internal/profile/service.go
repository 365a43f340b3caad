// Package profile serves a worker's own profile page.
package profile

import (
	"context"

	"krixo-panel/internal/backend"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/models"
	"krixo-panel/internal/normalizer"
)

const (
	MsgLoadFailed = "تعذر تحميل بيانات العامل"
	MsgForbidden  = "غير مصرح لك بعرض هذا الملف"
)

type Service struct {
	api        backend.API
	normalizer *normalizer.Normalizer
	logger     logger.Logger
}

func NewService(api backend.API, n *normalizer.Normalizer, log logger.Logger) *Service {
	return &Service{
		api:        api,
		normalizer: n,
		logger:     log.WithFields(map[string]interface{}{"component": "profile"}),
	}
}

// CanView reports whether p may read the profile with the given id.
// Workers see only their own; the admin sentinel sees all.
func CanView(p models.Principal, id string) bool {
	switch p.Kind {
	case models.PrincipalWorker:
		return p.WorkerID == id
	case models.PrincipalAdmin:
		return true
	default:
		return false
	}
}

// Get loads and normalizes the worker with the given id.
func (s *Service) Get(ctx context.Context, p models.Principal, id string) (*models.Worker, error) {
	if !CanView(p, id) {
		s.logger.Warn("profile access denied", map[string]interface{}{
			"workerId":  id,
			"principal": string(p.Kind),
		})
		return nil, apperrors.NewUnauthorizedError(MsgForbidden)
	}

	payload, err := s.api.GetWorker(ctx, id)
	if err != nil {
		s.logger.Error("profile load failed", map[string]interface{}{
			"workerId": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	rec, ok := normalizer.FirstRecord(payload)
	if !ok {
		return nil, apperrors.NewNotFoundError(MsgLoadFailed, "worker: "+id)
	}
	w := s.normalizer.Worker(rec)
	return &w, nil
}
