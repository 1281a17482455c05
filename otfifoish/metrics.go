// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otfifoish

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metered adds metrics collection to a queue using the global meter provider.
// It records counters named metricName+".enqueued", ".rejected", ".dequeued",
// ".empty", ".removed" and ".remove_missed", plus an observable gauge
// metricName+".count".
func Metered[T any](metricName string, inner Queue[T]) Queue[T] {
	meter := otel.GetMeterProvider().Meter("otfifoish")

	// Create metrics
	q := &meteredQueue[T]{inner: inner}
	q.enqueued, _ = meter.Int64Counter(metricName+".enqueued",
		metric.WithDescription("Items accepted by Enqueue"))
	q.rejected, _ = meter.Int64Counter(metricName+".rejected",
		metric.WithDescription("Items refused by Enqueue"))
	q.dequeued, _ = meter.Int64Counter(metricName+".dequeued",
		metric.WithDescription("Items returned by TryDequeue"))
	q.empty, _ = meter.Int64Counter(metricName+".empty",
		metric.WithDescription("TryDequeue calls that found nothing"))
	q.removed, _ = meter.Int64Counter(metricName+".removed",
		metric.WithDescription("Items returned by TryRemove"))
	q.removeMissed, _ = meter.Int64Counter(metricName+".remove_missed",
		metric.WithDescription("TryRemove calls for items already gone"))
	_, _ = meter.Int64ObservableGauge(metricName+".count",
		metric.WithDescription("Items currently queued"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(inner.Count())
			return nil
		}))
	return q
}

type meteredQueue[T any] struct {
	inner        Queue[T]
	enqueued     metric.Int64Counter
	rejected     metric.Int64Counter
	dequeued     metric.Int64Counter
	empty        metric.Int64Counter
	removed      metric.Int64Counter
	removeMissed metric.Int64Counter
}

func (q *meteredQueue[T]) Enqueue(ctx context.Context, value T) (Handle[T], error) {
	h, err := q.inner.Enqueue(ctx, value)
	if err != nil {
		q.rejected.Add(ctx, 1)
		return nil, err
	}
	q.enqueued.Add(ctx, 1)
	return &meteredHandle[T]{q: q, inner: h}, nil
}

func (q *meteredQueue[T]) TryDequeue(ctx context.Context) (T, bool) {
	value, ok := q.inner.TryDequeue(ctx)
	if ok {
		q.dequeued.Add(ctx, 1)
	} else {
		q.empty.Add(ctx, 1)
	}
	return value, ok
}

func (q *meteredQueue[T]) Count() int64 {
	return q.inner.Count()
}

type meteredHandle[T any] struct {
	q     *meteredQueue[T]
	inner Handle[T]
}

func (h *meteredHandle[T]) TryRemove(ctx context.Context) (T, bool) {
	value, ok := h.inner.TryRemove(ctx)
	if ok {
		h.q.removed.Add(ctx, 1)
	} else {
		h.q.removeMissed.Add(ctx, 1)
	}
	return value, ok
}
