// Package errors provides the standardized error taxonomy shared by the panel services.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeDuplicateEmail       ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeBackendRequestFailed ErrorCode = "BACKEND_REQUEST_FAILED"
	ErrCodeNetworkFailure       ErrorCode = "NETWORK_FAILURE"
	ErrCodeKnownBackendDefect   ErrorCode = "KNOWN_BACKEND_DEFECT"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrCodeStorageFailed        ErrorCode = "STORAGE_FAILED"
	ErrCodeNotificationFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// NetworkFailureMessage is shown when the backend cannot be reached or times out.
const NetworkFailureMessage = "تعذر الاتصال بالخادم. يرجى المحاولة لاحقاً"

// Known backend defect markers. The backend leaks these when a NULL column is scanned.
var knownDefectMarkers = []string{"sql: Scan error", "converting driver.Value"}

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns the error with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError carries the field-scoped messages in metadata under "fields".
func NewValidationFailedError(message string, fields map[string]string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Metadata:  map[string]interface{}{"fields": fields},
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateEmailError reports an e-mail that is already registered.
func NewDuplicateEmailError(message, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateEmail,
		Message:   message,
		Details:   fmt.Sprintf("email: %s", email),
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendRequestFailedError keeps the raw response body as the message.
func NewBackendRequestFailedError(endpoint string, status int, body string) *StandardError {
	msg := strings.TrimSpace(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &StandardError{
		Code:      ErrCodeBackendRequestFailed,
		Message:   msg,
		Details:   fmt.Sprintf("endpoint: %s, status: %d", endpoint, status),
		Metadata:  map[string]interface{}{"status": status, "endpoint": endpoint},
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkFailureError hides transport details behind a generic message.
func NewNetworkFailureError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkFailure,
		Message:   NetworkFailureMessage,
		Details:   fmt.Sprintf("endpoint: %s, error: %v", endpoint, err),
		Timestamp: time.Now().UTC(),
	}
}

// NewKnownBackendDefectError is a backend failure whose body leaks a NULL
// scan error. The raw body stays the message.
func NewKnownBackendDefectError(endpoint string, status int, body string) *StandardError {
	se := NewBackendRequestFailedError(endpoint, status, body)
	se.Code = ErrCodeKnownBackendDefect
	return se
}

func NewNotFoundError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnauthorizedError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTransitionError reports an action on a record that is no longer pending.
func NewInvalidTransitionError(entity, id, state string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTransition,
		Message:   fmt.Sprintf("%s %s is already %s", entity, id, state),
		Details:   fmt.Sprintf("entity: %s, id: %s, state: %s", entity, id, state),
		Timestamp: time.Now().UTC(),
	}
}

func NewStorageFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "client storage unavailable",
		Details:   fmt.Sprintf("op: %s, error: %v", op, err),
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %v", channel, err),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandard unwraps err into a StandardError when one is in its chain.
func AsStandard(err error) (*StandardError, bool) {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	se, ok := AsStandard(err)
	return ok && se.Code == code
}

// HasDefectMarker reports whether text carries one of the database defect
// markers the backend is known to leak.
func HasDefectMarker(text string) bool {
	for _, marker := range knownDefectMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// IsKnownBackendDefect reports whether err is a KNOWN_BACKEND_DEFECT or its
// text carries a defect marker.
func IsKnownBackendDefect(err error) bool {
	if err == nil {
		return false
	}
	if HasCode(err, ErrCodeKnownBackendDefect) {
		return true
	}
	text := err.Error()
	if se, ok := AsStandard(err); ok {
		text = se.Message + " " + se.Details
	}
	return HasDefectMarker(text)
}

// UserMessage returns the message to show the user: the raw backend message
// when the backend answered, the error's own message for domain errors, and
// fallback otherwise.
func UserMessage(err error, fallback string) string {
	se, ok := AsStandard(err)
	if !ok || se.Message == "" {
		return fallback
	}
	switch se.Code {
	case ErrCodeStorageFailed, ErrCodeNotificationFailed:
		return fallback
	}
	return se.Message
}

// HTTPStatus maps an error code to the status returned by the panel API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeDuplicateEmail, ErrCodeInvalidTransition:
		return http.StatusConflict
	case ErrCodeBackendRequestFailed, ErrCodeKnownBackendDefect:
		return http.StatusBadGateway
	case ErrCodeNetworkFailure:
		return http.StatusGatewayTimeout
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeStorageFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeDuplicateEmail:
		return "VALIDATION"
	case ErrCodeBackendRequestFailed, ErrCodeNetworkFailure, ErrCodeKnownBackendDefect:
		return "BACKEND"
	case ErrCodeUnauthorized:
		return "AUTH"
	case ErrCodeInvalidTransition, ErrCodeNotFound:
		return "WORKFLOW"
	case ErrCodeStorageFailed:
		return "STORAGE"
	case ErrCodeNotificationFailed:
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
