package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
	"github.com/preston-bernstein/league-table-service/internal/providers/fixture"
	"github.com/preston-bernstein/league-table-service/internal/testutil"
)

func recordingBuilder(t *testing.T, page string) (*Builder, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return newBuilder(testutil.GoodProvider{Page: page}, WithTracerProvider(tp)), sr
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestBuildSpanCarriesTeamCount(t *testing.T) {
	b, sr := recordingBuilder(t, fixturePage())

	snap, err := b.Build(context.Background())
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "standings.build", span.Name())
	assert.Equal(t, codes.Unset, span.Status().Code)

	attrs := spanAttrs(span)
	assert.Equal(t, int64(snap.Len()), attrs[AttrTeams].AsInt64())
	assert.Equal(t, sourceURL, attrs[AttrSourceURL].AsString())
	assert.NotContains(t, attrs, attribute.Key(AttrStage))
}

func TestBuildSpanMarksFailedStage(t *testing.T) {
	b, sr := recordingBuilder(t, "<p>maintenance</p>")

	_, err := b.Build(context.Background())
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, standings.StageExtract+" failed", span.Status().Description)

	attrs := spanAttrs(span)
	assert.Equal(t, standings.StageExtract, attrs[AttrStage].AsString())
	assert.NotContains(t, attrs, attribute.Key(AttrTeams))
	require.NotEmpty(t, span.Events())
	assert.Equal(t, "exception", span.Events()[0].Name)
}

func TestWithTracerProviderIgnoresNil(t *testing.T) {
	b := NewBuilder(fixture.New(), sourceURL, WithTracerProvider(nil))
	require.NotNil(t, b.tracer)
	_, err := b.Build(context.Background())
	require.NoError(t, err)
}
