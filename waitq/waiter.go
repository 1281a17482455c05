// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package waitq

import "github.com/petenewcomb/fifoish-go"

// A Waiter has the following lifecycle states:
//
// 1. The zero value of waiter is a waiter that will never be signaled.
// [Waiter.Done] will return a nil channel, and [Waiter.Close] will panic.
//
// 2. [Queue.Add] returns a waiter with an empty notification channel of buffer
// length one that has been added to the queue.
//
// 3a. [Waiter.Close] removes the waiter from the queue before any notification
// reached it. This is an end state.
//
// 3b. [Queue.Notify] has retrieved the waiter from the queue and sent a
// message, filling the buffer.
//
// 4ba. The message is received by a select on [Waiter.Done], emptying the
// buffer. [Waiter.Close] then re-fills the buffer. This is an end state.
//
// 4bb. [Waiter.Close] attempts to send a message on its own notification
// channel but cannot because the buffer is full. It therefore calls
// [Queue.Notify] to pass the notification on to another waiter in the queue.
// This is an end state.
//
// 3c. [Queue.Notify] has retrieved the waiter from the queue but not yet sent,
// and [Waiter.Close], unable to remove the waiter, fills its own buffer.
//
// 4c. [Queue.Notify] finds the buffer full and moves on to the next waiter in
// the queue. This is an end state.
//
// Waiter variables may be safely copied and are designed to be passed by value.
type Waiter struct {
	q          *Queue
	notifyChan chan struct{}
	handle     fifoish.Handle[chan struct{}]
}

func (w Waiter) Done() <-chan struct{} {
	return w.notifyChan
}

func (w Waiter) Close() {
	if _, ok := w.handle.TryRemove(); ok {
		// Still queued, so no notification can have been sent.
		return
	}
	select {
	case w.notifyChan <- struct{}{}:
		// Filled notifyChan so that if Notify has yet to send, it knows that
		// this waiter is no longer listening and can pass the notification to
		// another.
	default:
		// notifyChan was full, meaning that this waiter was notified but didn't
		// receive it. Call Notify to pass the notification to another.
		w.q.Notify()
	}
}
