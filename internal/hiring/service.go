// internal/hiring/service.go
package hiring

import (
	"context"
	"time"

	"krixo-panel/internal/backend"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/common/metrics"
	"krixo-panel/internal/normalizer"
)

type Service struct {
	api       backend.API
	validator *Validator
	logger    logger.Logger
	now       func() time.Time
}

func NewService(api backend.API, log logger.Logger) *Service {
	return &Service{
		api:       api,
		validator: NewValidator(),
		logger:    log.WithFields(map[string]interface{}{"component": "hiring"}),
		now:       time.Now,
	}
}

// Apply validates the form, rejects an e-mail that is already registered and
// creates the worker application.
func (s *Service) Apply(ctx context.Context, form Form) (*Result, error) {
	if fields := s.validator.Validate(form); len(fields) > 0 {
		metrics.ValidationFailures.WithLabelValues("hiring").Inc()
		return nil, apperrors.NewValidationFailedError(MsgFixErrors, fields)
	}

	exists, err := s.emailRegistered(ctx, form.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Info("duplicate application rejected", map[string]interface{}{"email": form.Email})
		return nil, apperrors.NewDuplicateEmailError(MsgDuplicateEmail, form.Email)
	}

	message := form.Message
	if message == "" {
		message = defaultMessage
	}

	payload := map[string]interface{}{
		"fullname":   form.FullName,
		"number":     form.Number,
		"email":      form.Email,
		"password":   form.Password,
		"position":   form.Position,
		"experience": form.Experience,
		"message":    message,
		"createdAt":  s.now().UTC().Format(normalizer.TimestampLayout),
	}
	if _, err := s.api.CreateWorker(ctx, payload); err != nil {
		s.logger.Error("create worker failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("worker application created", map[string]interface{}{
		"email":    form.Email,
		"position": form.Position,
	})
	return &Result{Success: true, Message: MsgSubmitted}, nil
}

func (s *Service) emailRegistered(ctx context.Context, email string) (bool, error) {
	payload, err := s.api.GetWorkers(ctx)
	if err != nil {
		return false, err
	}
	_, found := normalizer.FindByEmail(normalizer.ExtractRecords(payload), email)
	return found, nil
}

// FailureMessage is the notice text for a failed application. Form and
// duplicate errors carry their own text; anything else is prefixed.
func FailureMessage(err error) string {
	if apperrors.HasCode(err, apperrors.ErrCodeValidationFailed) || apperrors.HasCode(err, apperrors.ErrCodeDuplicateEmail) {
		return apperrors.UserMessage(err, MsgFixErrors)
	}
	return MsgSubmitFailed + apperrors.UserMessage(err, "خطأ غير متوقع")
}
