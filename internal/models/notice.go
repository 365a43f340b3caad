// internal/models/notice.go
package models

// Notice levels
const (
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Notice is a short user-facing message attached to an API response.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func NewNotice(level, message string) *Notice {
	return &Notice{Level: level, Message: message}
}
