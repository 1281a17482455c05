// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otfifoish provides logging, metrics and OpenTelemetry tracing for
// fifoish queues. Each concern is a wrapper around the context-aware [Queue]
// interface so that they can be applied separately or all at once with
// [Instrumented]. Trace context can also travel with each item from the
// enqueuing goroutine to the dequeuing one; see [Propagate].
package otfifoish

import (
	"context"

	"github.com/petenewcomb/fifoish-go"
)

// Queue is a fifoish queue whose operations accept a context for the benefit
// of instrumentation. The context never makes an operation block.
type Queue[T any] interface {
	Enqueue(ctx context.Context, value T) (Handle[T], error)
	TryDequeue(ctx context.Context) (T, bool)
	Count() int64
}

// Handle is the context-aware counterpart of [fifoish.Handle].
type Handle[T any] interface {
	TryRemove(ctx context.Context) (T, bool)
}

// Wrap adapts q to the [Queue] interface without adding any instrumentation.
func Wrap[T any](q *fifoish.Queue[T]) Queue[T] {
	return plainQueue[T]{q: q}
}

type plainQueue[T any] struct {
	q *fifoish.Queue[T]
}

func (p plainQueue[T]) Enqueue(_ context.Context, value T) (Handle[T], error) {
	h, err := p.q.Enqueue(value)
	if err != nil {
		return nil, err
	}
	return plainHandle[T]{h: h}, nil
}

func (p plainQueue[T]) TryDequeue(context.Context) (T, bool) {
	return p.q.TryDequeue()
}

func (p plainQueue[T]) Count() int64 {
	return p.q.Count()
}

type plainHandle[T any] struct {
	h fifoish.Handle[T]
}

func (p plainHandle[T]) TryRemove(context.Context) (T, bool) {
	return p.h.TryRemove()
}
