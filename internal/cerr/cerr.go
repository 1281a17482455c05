// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cerr provides an error type whose values can be declared as
// constants, so that sentinel errors cannot be reassigned.
package cerr

// Error is a constant-friendly error. Two Errors with the same text compare
// equal, so errors.Is matches them by value.
type Error string

func (e Error) Error() string {
	return string(e)
}
