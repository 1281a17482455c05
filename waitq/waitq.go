// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package waitq provides a lock-free FIFO queue of waiters, each of which can
// be woken by a notification or leave the queue on its own. Waiters that give
// up are removed immediately instead of lingering until a notification skips
// over them.
package waitq

import "github.com/petenewcomb/fifoish-go"

type Queue struct {
	inner *fifoish.Queue[chan struct{}]
}

func New() *Queue {
	return &Queue{
		inner: fifoish.New[chan struct{}](),
	}
}

// Add registers a new waiter at the back of the queue. Never blocks.
//
// Returns [fifoish.ErrCapacity] if the queue's capacity has been limited with
// SetCapacity and is exhausted.
func (q *Queue) Add() (Waiter, error) {
	notifyChan := make(chan struct{}, 1)
	h, err := q.inner.Enqueue(notifyChan)
	if err != nil {
		return Waiter{}, err
	}
	return Waiter{
		q:          q,
		notifyChan: notifyChan,
		handle:     h,
	}, nil
}

// SetCapacity limits the number of registered waiters.
func (q *Queue) SetCapacity(capacity int64) {
	q.inner.SetCapacity(capacity)
}

// Notify signals the waiter at the front of the queue (if any). A notification
// sent to an empty queue is dropped.
func (q *Queue) Notify() {
	for {
		notifyChan, ok := q.inner.TryDequeue()
		if !ok {
			return
		}

		select {
		case notifyChan <- struct{}{}:
			// The notification was sent.
			return
		default:
			// The channel was full, meaning that the waiter was closed after
			// we dequeued it. Loop and try the next one.
		}
	}
}

// Len returns the number of waiters currently registered.
func (q *Queue) Len() int {
	return int(q.inner.Count())
}
