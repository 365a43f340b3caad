package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"krixo-panel/internal/models"
)

// Session is one client's view of its storage. It is built per request and
// passed explicitly to the services that need it.
type Session struct {
	ClientID string
	store    Storage
	sentinel string
}

func New(clientID string, store Storage) *Session {
	return &Session{ClientID: clientID, store: store, sentinel: AdminToken}
}

// WithSentinel sets the admin sentinel the stored token is classified
// against. Empty keeps the default.
func (s *Session) WithSentinel(sentinel string) *Session {
	if sentinel != "" {
		s.sentinel = sentinel
	}
	return s
}

// Classify classifies token against this session's admin sentinel.
func (s *Session) Classify(token string) models.Principal {
	return Classify(token, s.sentinel)
}

func (s *Session) get(ctx context.Context, key string) (string, error) {
	val, err := s.store.Get(ctx, s.ClientID, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return val, nil
}

// Token returns the stored auth token, empty when unauthenticated.
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAuthToken)
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, s.ClientID, KeyAuthToken, token); err != nil {
		return fmt.Errorf("write %s: %w", KeyAuthToken, err)
	}
	return nil
}

// ClearToken logs the client out. Cached worker data goes with the token.
func (s *Session) ClearToken(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.ClientID, KeyAuthToken, KeyWorkerData); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Principal classifies the stored token.
func (s *Session) Principal(ctx context.Context) (models.Principal, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return models.Principal{}, err
	}
	return s.Classify(token), nil
}

// WorkerData returns the worker record cached at login, nil when absent.
func (s *Session) WorkerData(ctx context.Context) (map[string]interface{}, error) {
	raw, err := s.get(ctx, KeyWorkerData)
	if err != nil || raw == "" {
		return nil, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyWorkerData, err)
	}
	return data, nil
}

func (s *Session) SetWorkerData(ctx context.Context, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyWorkerData, err)
	}
	if err := s.store.Set(ctx, s.ClientID, KeyWorkerData, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", KeyWorkerData, err)
	}
	return nil
}

// ScreenshotMode reports the demo-data flag.
func (s *Session) ScreenshotMode(ctx context.Context) (bool, error) {
	val, err := s.get(ctx, KeyScreenshotMode)
	return val == "true", err
}

func (s *Session) SetScreenshotMode(ctx context.Context, on bool) error {
	if !on {
		if err := s.store.Delete(ctx, s.ClientID, KeyScreenshotMode); err != nil {
			return fmt.Errorf("clear %s: %w", KeyScreenshotMode, err)
		}
		return nil
	}
	if err := s.store.Set(ctx, s.ClientID, KeyScreenshotMode, "true"); err != nil {
		return fmt.Errorf("write %s: %w", KeyScreenshotMode, err)
	}
	return nil
}
