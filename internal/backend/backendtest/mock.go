// Package backendtest provides a testify mock of backend.API.
package backendtest

import (
	"context"
	"testing"

	"krixo-panel/internal/normalizer"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) payload(args mock.Arguments) (normalizer.Payload, error) {
	p, _ := args.Get(0).(normalizer.Payload)
	return p, args.Error(1)
}

func (m *MockAPI) CreateCommand(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx, payload))
}

func (m *MockAPI) GetCommands(ctx context.Context) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx))
}

func (m *MockAPI) UpdateCommand(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx, payload))
}

func (m *MockAPI) CreateWorker(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx, payload))
}

func (m *MockAPI) GetWorkers(ctx context.Context) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx))
}

func (m *MockAPI) UpdateWorker(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx, payload))
}

func (m *MockAPI) GetWorker(ctx context.Context, id string) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx, id))
}

func (m *MockAPI) Register(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx, payload))
}

func (m *MockAPI) GetAccount(ctx context.Context, id string) (normalizer.Payload, error) {
	return m.payload(m.Called(ctx, id))
}

func (m *MockAPI) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// JSON parses body into a payload for use as a mock return value.
func JSON(t testing.TB, body string) normalizer.Payload {
	t.Helper()
	p, err := normalizer.ParsePayload([]byte(body))
	require.NoError(t, err)
	return p
}
