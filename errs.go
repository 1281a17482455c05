// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package fifoish

import "github.com/petenewcomb/fifoish-go/internal/cerr"

// ErrCapacity is returned by [Queue.Enqueue] when accepting another item would
// exceed the queue's capacity. The queue remains usable.
const ErrCapacity = cerr.Error("queue capacity exceeded")

// ErrRetryLimit is the panic value (possibly wrapped) raised when an internal
// retry loop exceeds its sanity bound. It indicates a cycle or a stuck node,
// i.e. a bug in the queue, and is not meant to be recovered from.
const ErrRetryLimit = cerr.Error("retry limit exceeded")
