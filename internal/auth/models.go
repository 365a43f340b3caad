// internal/auth/models.go
package auth

import "krixo-panel/internal/models"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult tells the client who it is now and where to go.
type LoginResult struct {
	Principal models.Principal       `json:"principal"`
	Redirect  string                 `json:"redirect"`
	Message   string                 `json:"message"`
	Worker    map[string]interface{} `json:"worker,omitempty"`
}

// SessionInfo describes the current client session.
type SessionInfo struct {
	Principal       models.Principal       `json:"principal"`
	AdminAuthorized bool                   `json:"adminAuthorized"`
	ScreenshotMode  bool                   `json:"screenshotMode"`
	Worker          map[string]interface{} `json:"worker,omitempty"`
}

const (
	MsgAdminLoggedIn       = "تم تسجيل الدخول بنجاح"
	MsgAdminViaWorkerLogin = "تم تسجيل دخول الأدمن بنجاح"
	MsgWorkerLoggedIn      = "تم تسجيل الدخول بنجاح"
	MsgLoggedOut           = "تم تسجيل الخروج بنجاح"
	MsgBadAdminCredentials = "بيانات الدخول غير صحيحة"
	MsgBadWorkerLogin      = "البريد الإلكتروني أو كلمة المرور غير صحيحة"
	MsgEmailNotFound       = "البريد الإلكتروني غير موجود"
	MsgLoginFailed         = "فشل تسجيل الدخول"
	MsgLoginRequired       = "يرجى تسجيل الدخول"
)
