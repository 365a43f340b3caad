// internal/notify/models.go
package notify

// Result describes one decision notification.
type Result struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "disabled"
	Channels       []string `json:"channels,omitempty"`
	SentAt         string   `json:"sentAt"`
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Notification types
const (
	TypeCommandApproved = "command_approved"
	TypeCommandRejected = "command_rejected"
)

var templates = map[string]map[string]string{
	TypeCommandApproved: {
		"subject": "تم قبول طلبك - كريكسو",
		"body":    "مرحباً {{name}}، تم قبول طلب الخدمة رقم {{id}} ({{services}}) من {{start}} إلى {{end}}. سنتواصل معك قريباً.",
	},
	TypeCommandRejected: {
		"subject": "بخصوص طلبك - كريكسو",
		"body":    "مرحباً {{name}}، نعتذر، تم رفض طلب الخدمة رقم {{id}}.",
	},
}
