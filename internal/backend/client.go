// Package backend is the client for the external KRIXO backend API.
package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "krixo-panel/internal/common/errors"
	commonhttp "krixo-panel/internal/common/http"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/common/metrics"
	"krixo-panel/internal/common/observability"
	"krixo-panel/internal/normalizer"

	"go.opentelemetry.io/otel/attribute"
)

const (
	PathCreateCommand = "/CreateCommand"
	PathGetCommands   = "/GetCommands"
	PathUpdateCommand = "/UpdateCommand"
	PathCreateWorker  = "/CreateWorker"
	PathGetWorkers    = "/GetWorkers"
	PathUpdateWorker  = "/UpdateWorker"
	PathWorker        = "/worker/"
	PathRegistration  = "/Regestration"
	PathAccount       = "/account/"
	PathHealth        = "/health"
)

// API is the set of backend operations the panel uses.
type API interface {
	CreateCommand(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error)
	GetCommands(ctx context.Context) (normalizer.Payload, error)
	UpdateCommand(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error)
	CreateWorker(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error)
	GetWorkers(ctx context.Context) (normalizer.Payload, error)
	UpdateWorker(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error)
	GetWorker(ctx context.Context, id string) (normalizer.Payload, error)
	Register(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error)
	GetAccount(ctx context.Context, id string) (normalizer.Payload, error)
	Health(ctx context.Context) error
}

type tokenKey struct{}

// WithToken attaches the session token sent as a bearer credential.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client calls the backend once per operation. There are no retries.
type Client struct {
	http   *commonhttp.Client
	obs    *observability.Observability
	logger logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, obs *observability.Observability, log logger.Logger) *Client {
	return &Client{
		http:   commonhttp.NewClient(baseURL, timeout),
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "backend"}),
	}
}

func (c *Client) do(ctx context.Context, method, path, endpoint string, body interface{}) ([]byte, error) {
	ctx, span := c.obs.StartSpan(ctx, "backend "+endpoint,
		attribute.String("http.method", method),
		attribute.String("backend.endpoint", endpoint),
	)
	start := time.Now()

	resp, err := c.http.DoJSON(ctx, method, path, body, tokenFrom(ctx))
	elapsed := time.Since(start)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())

	if err != nil {
		metrics.BackendRequests.WithLabelValues(endpoint, "network_error").Inc()
		c.obs.RecordCall(ctx, endpoint, "network_error", elapsed)
		c.logger.Warn("backend unreachable", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		stdErr := apperrors.NewNetworkFailureError(endpoint, err)
		observability.EndSpan(span, stdErr)
		return nil, stdErr
	}

	status := strconv.Itoa(resp.StatusCode)
	metrics.BackendRequests.WithLabelValues(endpoint, status).Inc()
	c.obs.RecordCall(ctx, endpoint, status, elapsed)

	if !resp.OK() {
		c.logger.Warn("backend request failed", map[string]interface{}{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		})
		stdErr := apperrors.NewBackendRequestFailedError(endpoint, resp.StatusCode, string(resp.Body))
		if apperrors.HasDefectMarker(string(resp.Body)) {
			stdErr = apperrors.NewKnownBackendDefectError(endpoint, resp.StatusCode, string(resp.Body))
		}
		observability.EndSpan(span, stdErr)
		return nil, stdErr
	}

	c.logger.Debug("backend request completed", map[string]interface{}{
		"endpoint":   endpoint,
		"status":     resp.StatusCode,
		"durationMs": elapsed.Milliseconds(),
	})
	observability.EndSpan(span, nil)
	return resp.Body, nil
}

// fetch decodes the response strictly.
func (c *Client) fetch(ctx context.Context, method, path, endpoint string, body interface{}) (normalizer.Payload, error) {
	raw, err := c.do(ctx, method, path, endpoint, body)
	if err != nil {
		return normalizer.Payload{}, err
	}
	payload, err := normalizer.ParsePayload(raw)
	if err != nil {
		return normalizer.Payload{}, apperrors.NewBackendRequestFailedError(endpoint, http.StatusBadGateway, err.Error())
	}
	return payload, nil
}

// send tolerates empty or non-JSON success bodies.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (normalizer.Payload, error) {
	raw, err := c.do(ctx, method, path, path, body)
	if err != nil {
		return normalizer.Payload{}, err
	}
	payload, perr := normalizer.ParsePayload(raw)
	if perr != nil {
		c.logger.Debug("ignoring non-JSON success body", map[string]interface{}{"endpoint": path})
		return normalizer.Payload{}, nil
	}
	return payload, nil
}

func (c *Client) CreateCommand(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return c.send(ctx, http.MethodPost, PathCreateCommand, payload)
}

func (c *Client) GetCommands(ctx context.Context) (normalizer.Payload, error) {
	return c.fetch(ctx, http.MethodGet, PathGetCommands, PathGetCommands, nil)
}

func (c *Client) UpdateCommand(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return c.send(ctx, http.MethodPut, PathUpdateCommand, payload)
}

func (c *Client) CreateWorker(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return c.send(ctx, http.MethodPost, PathCreateWorker, payload)
}

func (c *Client) GetWorkers(ctx context.Context) (normalizer.Payload, error) {
	return c.fetch(ctx, http.MethodGet, PathGetWorkers, PathGetWorkers, nil)
}

func (c *Client) UpdateWorker(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return c.send(ctx, http.MethodPut, PathUpdateWorker, payload)
}

func (c *Client) GetWorker(ctx context.Context, id string) (normalizer.Payload, error) {
	return c.fetch(ctx, http.MethodGet, PathWorker+url.PathEscape(id), "/worker/{id}", nil)
}

func (c *Client) Register(ctx context.Context, payload map[string]interface{}) (normalizer.Payload, error) {
	return c.fetch(ctx, http.MethodPost, PathRegistration, PathRegistration, payload)
}

func (c *Client) GetAccount(ctx context.Context, id string) (normalizer.Payload, error) {
	return c.fetch(ctx, http.MethodGet, PathAccount+url.PathEscape(id), "/account/{id}", nil)
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, PathHealth, PathHealth, nil)
	return err
}
