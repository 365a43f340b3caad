// internal/hiring/models.go
package hiring

// Form is the public job application.
type Form struct {
	FullName   string `json:"fullname"`
	Number     string `json:"number"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Position   string `json:"position"`
	Experience string `json:"experience"`
	Message    string `json:"message,omitempty"`
}

// Result is the outcome of a successful application.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Positions offered on the form.
var Positions = []string{"عامل نقل", "منظم وترتيب", "سائق", "أخرى"}

const (
	MsgFixErrors      = "يرجى تصحيح الأخطاء في النموذج"
	MsgDuplicateEmail = "البريد الإلكتروني مسجل مسبقاً. يرجى استخدام بريد إلكتروني آخر أو تسجيل الدخول"
	MsgSubmitted      = "وتسجيل الحساب بنجاح!"
	MsgSubmitFailed   = "فشل في إرسال طلب التوظيف أو تسجيل الحساب: "
	defaultMessage    = "لا يوجد"
)
