// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otfifoish

import (
	"github.com/petenewcomb/fifoish-go"
)

// Instrumented combines tracing, metrics, logging, and trace propagation for a
// queue into a single wrapper.
//
// Example:
//
//	q := otfifoish.Instrumented("jobs", fifoish.New[otfifoish.Propagated[Job]]())
//	h, err := q.Enqueue(ctx, job)
//	...
//	ctx, job, ok := q.TryDequeue(ctx)
func Instrumented[T any](
	queueName string,
	q *fifoish.Queue[Propagated[T]],
) *PropagatingQueue[T] {
	// Apply wrappers inside-out:
	// 1. First add logging
	logged := Logged(queueName, Wrap(q))

	// 2. Then add metrics
	metered := Metered(queueName, logged)

	// 3. Then add tracing
	traced := Traced(queueName, metered)

	// 4. Finally stamp items with the enqueuer's trace context
	return Propagate(traced)
}
