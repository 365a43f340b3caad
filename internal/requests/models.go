// internal/requests/models.go
package requests

// Input is a public moving/service request.
type Input struct {
	FullName    string      `json:"fullname"`
	Number      string      `json:"number"`
	Email       string      `json:"email,omitempty"`
	Floor       interface{} `json:"floor,omitempty"`
	ItemType    string      `json:"itemType,omitempty"`
	Services    []string    `json:"services"`
	Workers     int         `json:"workers"`
	Start       string      `json:"start"`
	End         string      `json:"end"`
	Price       interface{} `json:"price"`
	Description string      `json:"description,omitempty"`
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	MsgFixErrors = "يرجى تصحيح الأخطاء في النموذج"
	MsgSubmitted = "تم إرسال طلبك بنجاح"
	MsgFailed    = "فشل في إرسال الطلب"
)

// inputSchema describes the JSON body accepted from the public request form.
const inputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["fullname", "number", "services", "workers", "start", "end", "price"],
  "properties": {
    "fullname":    {"type": "string", "minLength": 3},
    "number":      {"type": "string", "pattern": "^0[567][0-9]{8}$"},
    "email":       {"type": "string"},
    "floor":       {"type": ["string", "integer"]},
    "itemType":    {"type": "string"},
    "services":    {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
    "workers":     {"type": "integer", "minimum": 1},
    "start":       {"type": "string", "minLength": 1},
    "end":         {"type": "string", "minLength": 1},
    "price":       {"type": ["string", "number"]},
    "description": {"type": "string"}
  }
}`
