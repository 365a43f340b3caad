// internal/requests/service.go
package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"krixo-panel/internal/backend"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/common/metrics"
	"krixo-panel/internal/common/validation"
	"krixo-panel/internal/normalizer"
)

var schema = validation.MustCompileSchema(inputSchema)

type Service struct {
	api    backend.API
	logger logger.Logger
}

func NewService(api backend.API, log logger.Logger) *Service {
	return &Service{
		api:    api,
		logger: log.WithFields(map[string]interface{}{"component": "requests"}),
	}
}

// Submit validates a decoded request document and forwards it to the
// backend in the backend's field naming.
func (s *Service) Submit(ctx context.Context, document map[string]interface{}) (*Result, error) {
	result, err := schema.Validate(document)
	if err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}
	if !result.Valid {
		metrics.ValidationFailures.WithLabelValues("request").Inc()
		return nil, apperrors.NewValidationFailedError(MsgFixErrors, result.FieldMessages())
	}

	input, err := decodeInput(document)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(MsgFixErrors, map[string]string{"form": err.Error()})
	}

	if _, err := s.api.CreateCommand(ctx, ToBackend(input)); err != nil {
		s.logger.Error("create command failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("service request created", map[string]interface{}{
		"services": len(input.Services),
		"workers":  input.Workers,
	})
	return &Result{Success: true, Message: MsgSubmitted}, nil
}

func decodeInput(document map[string]interface{}) (*Input, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, err
	}
	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}
	return &input, nil
}

// ToBackend renames and stringifies the request the way /CreateCommand expects.
func ToBackend(in *Input) map[string]interface{} {
	return map[string]interface{}{
		"fullname":    in.FullName,
		"number":      in.Number,
		"flor":        normalizer.Stringify(in.Floor),
		"itemtype":    in.ItemType,
		"service":     strings.Join(in.Services, ", "),
		"workers":     fmt.Sprintf("%d", in.Workers),
		"start":       in.Start,
		"distination": in.End,
		"prise":       normalizer.Stringify(in.Price),
		"isaccepted":  "false",
	}
}
