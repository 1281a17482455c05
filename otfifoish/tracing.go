// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otfifoish

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Traced adds a span to every operation on a queue, named after the queue and
// the operation, e.g. "jobs.enqueue".
func Traced[T any](queueName string, inner Queue[T]) Queue[T] {
	return &tracedQueue[T]{name: queueName, inner: inner}
}

type tracedQueue[T any] struct {
	name  string
	inner Queue[T]
}

func (q *tracedQueue[T]) Enqueue(ctx context.Context, value T) (Handle[T], error) {
	tracer := otel.Tracer("otfifoish")
	ctx, span := tracer.Start(ctx, q.name+".enqueue")
	defer span.End()

	h, err := q.inner.Enqueue(ctx, value)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &tracedHandle[T]{name: q.name, inner: h}, nil
}

func (q *tracedQueue[T]) TryDequeue(ctx context.Context) (T, bool) {
	tracer := otel.Tracer("otfifoish")
	ctx, span := tracer.Start(ctx, q.name+".dequeue")
	defer span.End()

	value, ok := q.inner.TryDequeue(ctx)
	span.SetAttributes(attribute.Bool("fifoish.found", ok))
	return value, ok
}

func (q *tracedQueue[T]) Count() int64 {
	return q.inner.Count()
}

type tracedHandle[T any] struct {
	name  string
	inner Handle[T]
}

func (h *tracedHandle[T]) TryRemove(ctx context.Context) (T, bool) {
	tracer := otel.Tracer("otfifoish")
	ctx, span := tracer.Start(ctx, h.name+".remove")
	defer span.End()

	value, ok := h.inner.TryRemove(ctx)
	span.SetAttributes(attribute.Bool("fifoish.removed", ok))
	return value, ok
}
