// internal/dashboard/messages.go
package dashboard

import apperrors "krixo-panel/internal/common/errors"

const (
	MsgCommandApproved = "تم قبول الطلب وإرسال إيميل للعميل"
	MsgCommandRejected = "تم رفض الطلب وإرسال إيميل للعميل"
	MsgWorkerApproved  = "تم قبول العامل بنجاح"
	MsgWorkerRejected  = "تم رفض العامل بنجاح"

	MsgCommandNotFound = "الطلب غير موجود"
	MsgWorkerNotFound  = "العامل غير موجود"

	MsgDemoFallback = "الخادم يحتوي على خطأ في قاعدة البيانات. يتم عرض بيانات تجريبية."
	msgLoadFailed   = "فشل في تحميل البيانات: "
	msgUnexpected   = "خطأ غير متوقع"
)

// Entities
const (
	EntityCommand = "command"
	EntityWorker  = "worker"
)

var failureFallbacks = map[string]map[bool]string{
	EntityCommand: {true: "حدث خطأ أثناء قبول الطلب", false: "حدث خطأ أثناء رفض الطلب"},
	EntityWorker:  {true: "حدث خطأ أثناء قبول العامل", false: "حدث خطأ أثناء رفض العامل"},
}

var successMessages = map[string]map[bool]string{
	EntityCommand: {true: MsgCommandApproved, false: MsgCommandRejected},
	EntityWorker:  {true: MsgWorkerApproved, false: MsgWorkerRejected},
}

// DecisionFailureMessage is the text shown when an approve/reject call fails.
func DecisionFailureMessage(entity string, approve bool, err error) string {
	return apperrors.UserMessage(err, failureFallbacks[entity][approve])
}

// LoadFailureMessage is the text shown when the dashboard could not load.
func LoadFailureMessage(err error) string {
	return msgLoadFailed + apperrors.UserMessage(err, msgUnexpected)
}

func decisionLabel(approve bool) string {
	if approve {
		return "approve"
	}
	return "reject"
}
