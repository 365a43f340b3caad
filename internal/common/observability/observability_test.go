package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestObservability_SpanAndCalls(t *testing.T) {
	reg := promclient.NewRegistry()
	o := New("panel-test", reg)
	defer o.Shutdown()

	ctx, span := o.StartSpan(context.Background(), "backend.GetCommands", attribute.String("endpoint", "/GetCommands"))
	require.NotNil(t, ctx)
	assert.True(t, span.SpanContext().IsValid())
	EndSpan(span, errors.New("boom"))

	o.RecordCall(context.Background(), "/GetCommands", "200", 15*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestObservability_NilSafe(t *testing.T) {
	var o *Observability
	_, span := o.StartSpan(context.Background(), "noop")
	EndSpan(span, nil)
	o.RecordCall(context.Background(), "/health", "200", time.Millisecond)
	o.Shutdown()
}
