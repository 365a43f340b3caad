package hiring

import (
	"context"
	"testing"

	"krixo-panel/internal/backend/backendtest"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/normalizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func createValidForm() Form {
	return Form{
		FullName:   "Yacine Benali",
		Number:     "0555123456",
		Email:      "yacine@example.dz",
		Password:   "secret1",
		Position:   "سائق",
		Experience: "خمس سنوات في النقل",
	}
}

// ==========================
// Validator Tests
// ==========================

func TestValidator_ValidForm(t *testing.T) {
	assert.Empty(t, NewValidator().Validate(createValidForm()))
}

func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *Form)
		field   string
		message string
	}{
		{"blank name", func(f *Form) { f.FullName = "   " }, "fullname", "الرجاء إدخال الاسم واللقب"},
		{"short name after trim", func(f *Form) { f.FullName = "  Al " }, "fullname", "الاسم قصير جدًا"},
		{"missing phone", func(f *Form) { f.Number = "" }, "number", "الرجاء إدخال رقم الهاتف"},
		{"phone with wrong prefix", func(f *Form) { f.Number = "0812345678" }, "number", "رقم هاتف غير صالح"},
		{"phone too short", func(f *Form) { f.Number = "055512345" }, "number", "رقم هاتف غير صالح"},
		{"phone with spaces", func(f *Form) { f.Number = "0555 123 456" }, "number", "رقم هاتف غير صالح"},
		{"missing email", func(f *Form) { f.Email = "" }, "email", "الرجاء إدخال البريد الإلكتروني"},
		{"email without dot", func(f *Form) { f.Email = "a@b" }, "email", "البريد الإلكتروني غير صالح"},
		{"missing position", func(f *Form) { f.Position = "" }, "position", "الرجاء اختيار المنصب"},
		{"unknown position", func(f *Form) { f.Position = "مدير" }, "position", "الرجاء اختيار المنصب"},
		{"blank experience", func(f *Form) { f.Experience = "\t" }, "experience", "الرجاء إدخال تفاصيل الخبرة"},
		{"missing password", func(f *Form) { f.Password = "" }, "password", "كلمة المرور يجب أن تكون 6 أحرف على الأقل"},
		{"short password", func(f *Form) { f.Password = "12345" }, "password", "كلمة المرور يجب أن تكون 6 أحرف على الأقل"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := createValidForm()
			tt.mutate(&form)

			errs := v.Validate(form)
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidator_AcceptedBoundaries(t *testing.T) {
	v := NewValidator()
	for _, phone := range []string{"0512345678", "0612345678", "0712345678"} {
		form := createValidForm()
		form.Number = phone
		assert.Empty(t, v.Validate(form), phone)
	}

	form := createValidForm()
	form.Password = "123456"
	form.FullName = "علي"
	assert.Empty(t, v.Validate(form))
}

func TestValidator_ReportsEveryField(t *testing.T) {
	errs := NewValidator().Validate(Form{})
	assert.Len(t, errs, 6)
	_, hasMessage := errs["message"]
	assert.False(t, hasMessage)
}

// ==========================
// Apply Tests
// ==========================

func TestApply_CreatesWorker(t *testing.T) {
	api := new(backendtest.MockAPI)
	api.On("GetWorkers", mock.Anything).Return(backendtest.JSON(t, `[{"email":"other@example.dz"}]`), nil)
	api.On("CreateWorker", mock.Anything, mock.MatchedBy(func(p map[string]interface{}) bool {
		return p["fullname"] == "Yacine Benali" &&
			p["number"] == "0555123456" &&
			p["password"] == "secret1" &&
			p["message"] == "لا يوجد"
	})).Return(normalizer.Payload{}, nil)

	svc := NewService(api, logger.NewTestLogger(t))
	result, err := svc.Apply(context.Background(), createValidForm())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, MsgSubmitted, result.Message)
	api.AssertExpectations(t)
}

func TestApply_DuplicateEmailBlocksCreate(t *testing.T) {
	api := new(backendtest.MockAPI)
	api.On("GetWorkers", mock.Anything).Return(backendtest.JSON(t, `{"data":[{"email":"YACINE@Example.dz"}]}`), nil)

	svc := NewService(api, logger.NewTestLogger(t))
	_, err := svc.Apply(context.Background(), createValidForm())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDuplicateEmail))
	assert.Equal(t, MsgDuplicateEmail, apperrors.UserMessage(err, ""))
	api.AssertNotCalled(t, "CreateWorker", mock.Anything, mock.Anything)
}

func TestApply_InvalidFormSkipsBackend(t *testing.T) {
	api := new(backendtest.MockAPI)
	form := createValidForm()
	form.Number = "123"

	svc := NewService(api, logger.NewTestLogger(t))
	_, err := svc.Apply(context.Background(), form)

	se, ok := apperrors.AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, se.Code)
	assert.Equal(t, MsgFixErrors, se.Message)
	assert.Equal(t, map[string]string{"number": "رقم هاتف غير صالح"}, se.Metadata["fields"])
	api.AssertNotCalled(t, "GetWorkers", mock.Anything)
}

func TestApply_BackendFailureSurfaces(t *testing.T) {
	api := new(backendtest.MockAPI)
	api.On("GetWorkers", mock.Anything).Return(backendtest.JSON(t, `[]`), nil)
	api.On("CreateWorker", mock.Anything, mock.Anything).
		Return(normalizer.Payload{}, apperrors.NewBackendRequestFailedError("/CreateWorker", 500, "insert failed"))

	svc := NewService(api, logger.NewTestLogger(t))
	_, err := svc.Apply(context.Background(), createValidForm())

	require.Error(t, err)
	assert.Equal(t, "insert failed", apperrors.UserMessage(err, "x"))
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, MsgDuplicateEmail, FailureMessage(apperrors.NewDuplicateEmailError(MsgDuplicateEmail, "a@b.dz")))
	assert.Equal(t, MsgFixErrors, FailureMessage(apperrors.NewValidationFailedError(MsgFixErrors, nil)))
	assert.Equal(t, MsgSubmitFailed+"bad gateway",
		FailureMessage(apperrors.NewBackendRequestFailedError("/CreateWorker", 502, "bad gateway")))
}
