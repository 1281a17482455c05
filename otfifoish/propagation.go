// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otfifoish

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Propagated wraps a queued value with the trace context of the goroutine that
// enqueued it.
type Propagated[T any] struct {
	// Value is the item as passed to Enqueue
	Value T
	// TraceContext is the enqueuer's span context at the time of the call
	TraceContext trace.SpanContext
}

// PropagatingQueue carries trace context from enqueuers to dequeuers. Spans
// that a consumer starts from the context returned by TryDequeue (or TryRemove)
// are parented by the producer's span.
type PropagatingQueue[T any] struct {
	inner Queue[Propagated[T]]
}

// Propagate stamps every value enqueued through the result with the caller's
// span context before passing it on to inner.
func Propagate[T any](inner Queue[Propagated[T]]) *PropagatingQueue[T] {
	return &PropagatingQueue[T]{inner: inner}
}

func (q *PropagatingQueue[T]) Enqueue(ctx context.Context, value T) (*PropagatingHandle[T], error) {
	h, err := q.inner.Enqueue(ctx, Propagated[T]{
		Value:        value,
		TraceContext: trace.SpanFromContext(ctx).SpanContext(),
	})
	if err != nil {
		return nil, err
	}
	return &PropagatingHandle[T]{inner: h}, nil
}

// TryDequeue returns the front value together with a context derived from ctx
// that carries the enqueuer's trace context, if it had one.
func (q *PropagatingQueue[T]) TryDequeue(ctx context.Context) (context.Context, T, bool) {
	wrapped, ok := q.inner.TryDequeue(ctx)
	if !ok {
		return ctx, wrapped.Value, false
	}
	return propagatedContext(ctx, wrapped), wrapped.Value, true
}

func (q *PropagatingQueue[T]) Count() int64 {
	return q.inner.Count()
}

type PropagatingHandle[T any] struct {
	inner Handle[Propagated[T]]
}

func (h *PropagatingHandle[T]) TryRemove(ctx context.Context) (context.Context, T, bool) {
	wrapped, ok := h.inner.TryRemove(ctx)
	if !ok {
		return ctx, wrapped.Value, false
	}
	return propagatedContext(ctx, wrapped), wrapped.Value, true
}

func propagatedContext[T any](ctx context.Context, wrapped Propagated[T]) context.Context {
	if wrapped.TraceContext.IsValid() {
		return trace.ContextWithRemoteSpanContext(ctx, wrapped.TraceContext)
	}
	return ctx
}
