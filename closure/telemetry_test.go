package closure

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/cfpq/core"
	"github.com/katalvlaran/cfpq/grammar"
)

// recordSpans swaps the package tracer for one backed by a span recorder.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := tracer
	tracer = tp.Tracer("test")
	t.Cleanup(func() {
		tracer = prev
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

func TestCompute_Span(t *testing.T) {
	sr := recordSpans(t)
	g, err := grammar.NewWeakCNF("S", grammar.Term("S", "a"))
	require.NoError(t, err)
	graph := core.NewGraph()
	_, _ = graph.AddEdge("0", "1", "a")

	_, err = Compute(context.Background(), g, graph)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "closure.Compute", spans[0].Name())
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(2), attrs["vertex_count"].AsInt64())
	assert.Equal(t, int64(1), attrs["triple_count"].AsInt64())
	assert.Equal(t, int64(1), attrs["passes"].AsInt64())
}

func TestCompute_SpanRecordsError(t *testing.T) {
	sr := recordSpans(t)
	bad := &grammar.WeakCNF{Start: "S", Productions: []grammar.Production{{Head: "S"}}}

	_, err := Compute(context.Background(), bad, core.NewGraph())
	require.ErrorIs(t, err, ErrMalformedGrammar)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestCompute_Metrics(t *testing.T) {
	okBefore := testutil.ToFloat64(queryTotal.WithLabelValues(resultOK))
	badBefore := testutil.ToFloat64(queryTotal.WithLabelValues(resultMalformed))

	g, err := grammar.NewWeakCNF("S", grammar.Epsilon("S"))
	require.NoError(t, err)
	_, err = Compute(context.Background(), g, core.NewGraph())
	require.NoError(t, err)
	bad := &grammar.WeakCNF{Start: "S", Productions: []grammar.Production{{Head: "S"}}}
	_, err = Compute(context.Background(), bad, core.NewGraph())
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(queryTotal.WithLabelValues(resultOK)))
	assert.Equal(t, badBefore+1, testutil.ToFloat64(queryTotal.WithLabelValues(resultMalformed)))
}

func TestPassBound(t *testing.T) {
	assert.Equal(t, 1, passBound(0, 10))
	assert.Equal(t, 1, passBound(3, 0))
	assert.Equal(t, 3*4+1, passBound(3, 2))
	assert.Greater(t, passBound(1<<20, 1<<30), 0, "saturates instead of overflowing")
}
