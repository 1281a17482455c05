// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otfifoish

import (
	"context"

	"go.uber.org/zap"
)

// Logged adds structured logging to a queue. Each operation is logged at debug
// level with its outcome; refused enqueues are logged at error level.
func Logged[T any](queueName string, inner Queue[T]) Queue[T] {
	return &loggedQueue[T]{name: queueName, inner: inner}
}

type loggedQueue[T any] struct {
	name  string
	inner Queue[T]
}

func (q *loggedQueue[T]) Enqueue(ctx context.Context, value T) (Handle[T], error) {
	logger := zap.L()

	h, err := q.inner.Enqueue(ctx, value)
	if err != nil {
		logger.Error("Enqueue refused",
			zap.String("queue", q.name),
			zap.String("component", "otfifoish"),
			zap.Int64("count", q.inner.Count()),
			zap.Error(err))
		return nil, err
	}
	logger.Debug("Enqueued",
		zap.String("queue", q.name),
		zap.String("component", "otfifoish"),
		zap.Int64("count", q.inner.Count()))
	return &loggedHandle[T]{name: q.name, inner: h}, nil
}

func (q *loggedQueue[T]) TryDequeue(ctx context.Context) (T, bool) {
	value, ok := q.inner.TryDequeue(ctx)
	zap.L().Debug("Dequeue attempted",
		zap.String("queue", q.name),
		zap.String("component", "otfifoish"),
		zap.Bool("found", ok))
	return value, ok
}

func (q *loggedQueue[T]) Count() int64 {
	return q.inner.Count()
}

type loggedHandle[T any] struct {
	name  string
	inner Handle[T]
}

func (h *loggedHandle[T]) TryRemove(ctx context.Context) (T, bool) {
	value, ok := h.inner.TryRemove(ctx)
	zap.L().Debug("Remove attempted",
		zap.String("queue", h.name),
		zap.String("component", "otfifoish"),
		zap.Bool("removed", ok))
	return value, ok
}
