// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package fifoish_test

import (
	"fmt"

	"github.com/petenewcomb/fifoish-go"
)

func Example() {
	q := fifoish.New[string]()

	var handles []fifoish.Handle[string]
	for _, job := range []string{"fetch", "parse", "index", "publish"} {
		h, err := q.Enqueue(job)
		if err != nil {
			fmt.Println("enqueue:", err)
			return
		}
		handles = append(handles, h)
	}

	// Cancel "index" before any consumer gets to it.
	if job, ok := handles[2].TryRemove(); ok {
		fmt.Println("cancelled", job)
	}

	for {
		job, ok := q.TryDequeue()
		if !ok {
			break
		}
		fmt.Println("running", job)
	}

	// Too late to cancel "fetch"; it already ran.
	_, ok := handles[0].TryRemove()
	fmt.Println("cancelled fetch:", ok)

	// Output:
	// cancelled index
	// running fetch
	// running parse
	// running publish
	// cancelled fetch: false
}

func ExampleQueue_SetCapacity() {
	q := fifoish.New[int]()
	q.SetCapacity(1)

	_, err := q.Enqueue(1)
	fmt.Println(err)
	_, err = q.Enqueue(2)
	fmt.Println(err)
	fmt.Println(q.Count())

	// Output:
	// <nil>
	// queue capacity exceeded
	// 1
}
