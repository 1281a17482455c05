// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package status provides an atomic cell for small enumerated status codes.
package status

import "sync/atomic"

// Atomic holds a status code of type C and supports atomic compare-and-swap
// and exchange. The zero value holds the zero code and is ready to use.
type Atomic[C ~uint32] struct {
	v atomic.Uint32
}

func (a *Atomic[C]) Load() C {
	return C(a.v.Load())
}

func (a *Atomic[C]) Store(c C) {
	a.v.Store(uint32(c))
}

// CompareAndSwap sets the code to new only if it currently equals old, and
// reports whether it did.
func (a *Atomic[C]) CompareAndSwap(old, new C) bool {
	return a.v.CompareAndSwap(uint32(old), uint32(new))
}

// Swap sets the code to new and returns the previous code.
func (a *Atomic[C]) Swap(new C) C {
	return C(a.v.Swap(uint32(new)))
}
