// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otfifoish_test

import (
	"context"
	"testing"

	"github.com/petenewcomb/fifoish-go"
	"github.com/petenewcomb/fifoish-go/otfifoish"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapPassesThrough(t *testing.T) {
	chk := require.New(t)
	ctx := context.Background()
	q := otfifoish.Wrap(fifoish.New[int]())

	h, err := q.Enqueue(ctx, 1)
	chk.NoError(err)
	_, err = q.Enqueue(ctx, 2)
	chk.NoError(err)
	chk.Equal(int64(2), q.Count())

	v, ok := h.TryRemove(ctx)
	chk.True(ok)
	chk.Equal(1, v)

	v, ok = q.TryDequeue(ctx)
	chk.True(ok)
	chk.Equal(2, v)
}

func TestLogged(t *testing.T) {
	chk := require.New(t)
	core, logs := observer.New(zapcore.DebugLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	ctx := context.Background()
	inner := fifoish.New[int]()
	inner.SetCapacity(1)
	q := otfifoish.Logged("jobs", otfifoish.Wrap(inner))

	h, err := q.Enqueue(ctx, 1)
	chk.NoError(err)
	_, err = q.Enqueue(ctx, 2)
	chk.ErrorIs(err, fifoish.ErrCapacity)
	_, ok := h.TryRemove(ctx)
	chk.True(ok)
	_, ok = q.TryDequeue(ctx)
	chk.False(ok)

	entries := logs.AllUntimed()
	chk.Len(entries, 4)
	chk.Equal("Enqueued", entries[0].Message)
	chk.Equal("Enqueue refused", entries[1].Message)
	chk.Equal(zapcore.ErrorLevel, entries[1].Level)
	chk.Equal("Remove attempted", entries[2].Message)
	chk.Equal(true, entries[2].ContextMap()["removed"])
	chk.Equal("Dequeue attempted", entries[3].Message)
	chk.Equal(false, entries[3].ContextMap()["found"])
	for _, e := range entries {
		chk.Equal("jobs", e.ContextMap()["queue"])
	}
}

func TestMetered(t *testing.T) {
	chk := require.New(t)
	ctx := context.Background()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	defer otel.SetMeterProvider(previous)

	inner := fifoish.New[int]()
	inner.SetCapacity(2)
	q := otfifoish.Metered("jobs", otfifoish.Wrap(inner))

	h, err := q.Enqueue(ctx, 1)
	chk.NoError(err)
	_, err = q.Enqueue(ctx, 2)
	chk.NoError(err)
	_, err = q.Enqueue(ctx, 3)
	chk.Error(err)
	_, ok := h.TryRemove(ctx)
	chk.True(ok)
	_, ok = h.TryRemove(ctx)
	chk.False(ok)
	_, ok = q.TryDequeue(ctx)
	chk.True(ok)
	_, ok = q.TryDequeue(ctx)
	chk.False(ok)

	var rm metricdata.ResourceMetrics
	chk.NoError(reader.Collect(ctx, &rm))

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					got[m.Name] += dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					got[m.Name] = dp.Value
				}
			}
		}
	}
	chk.Equal(map[string]int64{
		"jobs.enqueued":      2,
		"jobs.rejected":      1,
		"jobs.dequeued":      1,
		"jobs.empty":         1,
		"jobs.removed":       1,
		"jobs.remove_missed": 1,
		"jobs.count":         0,
	}, got)
}

func newSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func TestTraced(t *testing.T) {
	chk := require.New(t)
	recorder := newSpanRecorder(t)
	ctx := context.Background()

	q := otfifoish.Traced("jobs", otfifoish.Wrap(fifoish.New[int]()))
	h, err := q.Enqueue(ctx, 1)
	chk.NoError(err)
	_, ok := h.TryRemove(ctx)
	chk.True(ok)
	_, ok = q.TryDequeue(ctx)
	chk.False(ok)

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	chk.Equal([]string{"jobs.enqueue", "jobs.remove", "jobs.dequeue"}, names)
}

func TestInstrumentedPropagatesTraceContext(t *testing.T) {
	chk := require.New(t)
	recorder := newSpanRecorder(t)

	core, logs := observer.New(zapcore.DebugLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	q := otfifoish.Instrumented("jobs", fifoish.New[otfifoish.Propagated[string]]())

	producerCtx, producerSpan := otel.Tracer("test").Start(context.Background(), "produce")
	_, err := q.Enqueue(producerCtx, "a")
	chk.NoError(err)
	h, err := q.Enqueue(producerCtx, "b")
	chk.NoError(err)
	producerSpan.End()
	chk.Equal(int64(2), q.Count())

	consumerCtx, value, ok := q.TryDequeue(context.Background())
	chk.True(ok)
	chk.Equal("a", value)
	chk.Equal(producerSpan.SpanContext().TraceID(), trace.SpanContextFromContext(consumerCtx).TraceID())

	_, consumeSpan := otel.Tracer("test").Start(consumerCtx, "consume")
	consumeSpan.End()

	removeCtx, value, ok := h.TryRemove(context.Background())
	chk.True(ok)
	chk.Equal("b", value)
	chk.Equal(producerSpan.SpanContext().SpanID(), trace.SpanContextFromContext(removeCtx).SpanID())

	_, _, ok = h.TryRemove(context.Background())
	chk.False(ok)
	ctx := context.Background()
	emptyCtx, _, ok := q.TryDequeue(ctx)
	chk.False(ok)
	chk.Equal(ctx, emptyCtx)

	var consume sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		if span.Name() == "consume" {
			consume = span
		}
	}
	chk.NotNil(consume)
	chk.Equal(producerSpan.SpanContext().SpanID(), consume.Parent().SpanID())

	chk.NotZero(logs.Len())
}

func TestCountCollector(t *testing.T) {
	chk := require.New(t)
	q := fifoish.New[int]()
	c := otfifoish.NewCountCollector("jobs_queued", "Jobs waiting to run.", q, prometheus.Labels{"queue": "jobs"})

	registry := prometheus.NewPedanticRegistry()
	chk.NoError(registry.Register(c))

	chk.Equal(float64(0), testutil.ToFloat64(c))
	for i := range 3 {
		_, err := q.Enqueue(i)
		chk.NoError(err)
	}
	chk.Equal(float64(3), testutil.ToFloat64(c))
	_, _ = q.TryDequeue()
	chk.Equal(float64(2), testutil.ToFloat64(c))
	chk.Equal(1, testutil.CollectAndCount(registry, "jobs_queued"))
}
