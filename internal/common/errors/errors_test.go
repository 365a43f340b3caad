package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Constructor Tests
// ==========================

func TestNewBackendRequestFailedError(t *testing.T) {
	err := NewBackendRequestFailedError("/UpdateCommand", http.StatusInternalServerError, "  command locked \n")

	assert.Equal(t, ErrCodeBackendRequestFailed, err.Code)
	assert.Equal(t, "command locked", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.Metadata["status"])
	assert.Contains(t, err.Error(), "StandardError[BACKEND_REQUEST_FAILED]")
}

func TestNewBackendRequestFailedError_EmptyBody(t *testing.T) {
	err := NewBackendRequestFailedError("/GetWorkers", http.StatusBadGateway, "")
	assert.Equal(t, "Bad Gateway", err.Message)
}

func TestNewValidationFailedError_CarriesFields(t *testing.T) {
	fields := map[string]string{"number": "رقم هاتف غير صالح"}
	err := NewValidationFailedError("يرجى تصحيح الأخطاء في النموذج", fields)

	assert.Equal(t, fields, err.Metadata["fields"])
	assert.Equal(t, "VALIDATION", GetErrorCategory(err.Code))
}

// ==========================
// Utility Tests
// ==========================

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"backend message wins", NewBackendRequestFailedError("/x", 500, "db down"), "db down"},
		{"wrapped backend message", fmt.Errorf("approve: %w", NewBackendRequestFailedError("/x", 500, "locked")), "locked"},
		{"network failure is generic", NewNetworkFailureError("/x", stderrors.New("dial tcp")), NetworkFailureMessage},
		{"plain error uses fallback", stderrors.New("boom"), "fallback"},
		{"nil uses fallback", nil, "fallback"},
		{"known defect keeps backend text", NewKnownBackendDefectError("/x", 500, "sql: Scan error"), "sql: Scan error"},
		{"storage failure uses fallback", NewStorageFailedError("get", stderrors.New("x")), "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err, "fallback"))
		})
	}
}

func TestIsKnownBackendDefect(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"scan error in body", NewBackendRequestFailedError("/GetCommands", 500, `sql: Scan error on column index 3, name "email"`), true},
		{"driver value in plain error", stderrors.New("converting driver.Value type <nil> to a string"), true},
		{"defect code", NewKnownBackendDefectError("/GetCommands", 500, "sql: Scan error"), true},
		{"other backend failure", NewBackendRequestFailedError("/GetCommands", 500, "internal error"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsKnownBackendDefect(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(ErrCodeValidationFailed))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrCodeDuplicateEmail))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrCodeInvalidTransition))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeBackendRequestFailed))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(ErrCodeNetworkFailure))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("SOMETHING_ELSE"))
}

func TestAsStandard(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFoundError("العامل غير موجود", "id: 7"))

	se, ok := AsStandard(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, se.Code)
	assert.True(t, HasCode(wrapped, ErrCodeNotFound))
	assert.False(t, HasCode(stderrors.New("x"), ErrCodeNotFound))
}
