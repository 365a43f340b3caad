// internal/hiring/validation.go
package hiring

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	dzMobileRegex   = regexp.MustCompile(`^0[567][0-9]{8}$`)
	looseEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// checkedForm carries the values as the rules see them: name and
// experience are trimmed, everything else is taken verbatim.
type checkedForm struct {
	FullName   string `json:"fullname" validate:"required,min=3"`
	Number     string `json:"number" validate:"required,dzmobile"`
	Email      string `json:"email" validate:"required,looseemail"`
	Position   string `json:"position" validate:"required,position"`
	Experience string `json:"experience" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

// messages maps field and failed tag to the message shown under the field.
var messages = map[string]map[string]string{
	"fullname": {
		"required": "الرجاء إدخال الاسم واللقب",
		"min":      "الاسم قصير جدًا",
	},
	"number": {
		"required": "الرجاء إدخال رقم الهاتف",
		"dzmobile": "رقم هاتف غير صالح",
	},
	"email": {
		"required":   "الرجاء إدخال البريد الإلكتروني",
		"looseemail": "البريد الإلكتروني غير صالح",
	},
	"position": {
		"required": "الرجاء اختيار المنصب",
		"position": "الرجاء اختيار المنصب",
	},
	"experience": {
		"required": "الرجاء إدخال تفاصيل الخبرة",
	},
	"password": {
		"required": "كلمة المرور يجب أن تكون 6 أحرف على الأقل",
		"min":      "كلمة المرور يجب أن تكون 6 أحرف على الأقل",
	},
}

// Validator checks hiring forms. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("dzmobile", func(fl validator.FieldLevel) bool {
		return dzMobileRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return looseEmailRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, p := range Positions {
			if value == p {
				return true
			}
		}
		return false
	})
	return &Validator{validate: v}
}

// Validate runs every rule and returns one message per failing field.
// An empty map means the form is valid.
func (v *Validator) Validate(form Form) map[string]string {
	checked := checkedForm{
		FullName:   strings.TrimSpace(form.FullName),
		Number:     form.Number,
		Email:      form.Email,
		Position:   form.Position,
		Experience: strings.TrimSpace(form.Experience),
		Password:   form.Password,
	}

	out := map[string]string{}
	err := v.validate.Struct(checked)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()][fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out[fe.Field()] = msg
	}
	return out
}
