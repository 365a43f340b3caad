// internal/server/respond.go
package server

import (
	"encoding/json"
	"net/http"

	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/models"
)

// envelope is the body of every panel API response.
type envelope struct {
	Data   interface{}    `json:"data,omitempty"`
	Error  interface{}    `json:"error,omitempty"`
	Notice *models.Notice `json:"notice,omitempty"`
}

const msgBadBody = "طلب غير صالح"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) ok(w http.ResponseWriter, data interface{}, notice *models.Notice) {
	writeJSON(w, http.StatusOK, envelope{Data: data, Notice: notice})
}

// fail writes err with message as the user-facing notice. Errors outside the
// taxonomy become a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, message string, data interface{}) {
	status := http.StatusInternalServerError
	var body interface{} = map[string]string{"code": "INTERNAL", "message": message}
	if se, ok := apperrors.AsStandard(err); ok {
		status = apperrors.HTTPStatus(se.Code)
		body = se
	}

	fields := map[string]interface{}{
		"path":   r.URL.Path,
		"status": status,
		"error":  err.Error(),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", fields)
	} else {
		s.logger.Warn("request rejected", fields)
	}

	writeJSON(w, status, envelope{
		Data:   data,
		Error:  body,
		Notice: models.NewNotice(models.NoticeError, message),
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationFailedError(msgBadBody, map[string]string{"body": err.Error()})
	}
	return nil
}
