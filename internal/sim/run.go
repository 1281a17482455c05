// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"cmp"
	"time"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
	"github.com/petenewcomb/fifoish-go"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type Result struct {
	Enqueued   int
	Rejected   int
	Dequeued   int
	EmptyPolls int
	Removed    int
	// TryRemove calls on items that were already gone.
	MissedRemovals int
	// Items still queued when the plan finished.
	Remaining int
	Duration  time.Duration
}

type stepEvent struct {
	Time  time.Duration
	Seq   int
	Actor int
	Step  int
}

func (a *stepEvent) Cmp(b *stepEvent) int {
	if c := cmp.Compare(a.Time, b.Time); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

type modelEntry struct {
	id    int
	value int
}

// Run executes the plan's steps one at a time in simulated-time order against
// a fresh queue, checking each outcome against a model of the queue.
func Run(t *rapid.T, plan *Plan) *Result {
	chk := require.New(t)

	q := fifoish.New[int]()
	if plan.Capacity > 0 {
		q.SetCapacity(plan.Capacity)
	}

	var result Result
	var model deque.Deque[modelEntry]
	var handles []fifoish.Handle[int]
	nextValue := 1

	var eventHeap heap.Heap[stepEvent, heap.Min]
	seq := 0
	schedule := func(now time.Duration, actor, step int) {
		delays := plan.Actors[actor].Delays
		if step >= len(delays) {
			return
		}
		heap.PushOrderable(&eventHeap, stepEvent{
			Time:  now + delays[step],
			Seq:   seq,
			Actor: actor,
			Step:  step,
		})
		seq++
	}

	produce := func() {
		value := nextValue
		nextValue++
		h, err := q.Enqueue(value)
		if plan.Capacity > 0 && int64(model.Len()) >= plan.Capacity {
			chk.ErrorIs(err, fifoish.ErrCapacity)
			result.Rejected++
			return
		}
		chk.NoError(err)
		model.PushBack(modelEntry{id: len(handles), value: value})
		handles = append(handles, h)
		result.Enqueued++
	}

	consume := func() {
		value, ok := q.TryDequeue()
		if model.Len() == 0 {
			chk.False(ok, "TryDequeue succeeded on empty queue")
			result.EmptyPolls++
			return
		}
		expected := model.PopFront()
		chk.True(ok, "TryDequeue failed on non-empty queue")
		chk.Equal(expected.value, value)
		result.Dequeued++
	}

	remove := func(name string) {
		if len(handles) == 0 {
			return
		}
		var id int
		if model.Len() > 0 && BiasedBool(plan.Config.RemoveLiveProbability).Draw(t, name+".Live") {
			id = model.At(rapid.IntRange(0, model.Len()-1).Draw(t, name+".Index")).id
		} else {
			id = rapid.IntRange(0, len(handles)-1).Draw(t, name+".ID")
		}

		value, ok := handles[id].TryRemove()
		i := model.Index(func(e modelEntry) bool { return e.id == id })
		if i < 0 {
			chk.False(ok, "TryRemove succeeded for an item no longer queued")
			result.MissedRemovals++
			return
		}
		expected := model.Remove(i)
		chk.True(ok, "TryRemove failed for a queued item")
		chk.Equal(expected.value, value)
		result.Removed++
	}

	for actor := range plan.Actors {
		schedule(0, actor, 0)
	}

	var concurrentEvents []stepEvent
	for {
		event, ok := heap.PopOrderable(&eventHeap)
		if !ok {
			break
		}
		concurrentEvents = concurrentEvents[:0]
		for {
			concurrentEvents = append(concurrentEvents, event)
			event, ok = heap.Peek(&eventHeap)
			if !ok || event.Time != concurrentEvents[0].Time {
				break
			}
			_, _ = heap.PopOrderable(&eventHeap)
		}
		if len(concurrentEvents) > 1 {
			concurrentEvents = rapid.Permutation(concurrentEvents).Draw(t, "concurrentEvents")
		}
		for _, event := range concurrentEvents {
			result.Duration = event.Time
			switch plan.Actors[event.Actor].Kind {
			case Producer:
				produce()
			case Consumer:
				consume()
			case Remover:
				remove("Step")
			}
			chk.Equal(int64(model.Len()), q.Count(), "Count mismatch after step")
			schedule(event.Time, event.Actor, event.Step+1)
		}
	}

	// Whatever is left must come out in model order.
	q.Drain(func(value int) bool {
		chk.NotZero(model.Len(), "queue holds more than the model")
		chk.Equal(model.PopFront().value, value)
		result.Remaining++
		return true
	})
	chk.Zero(model.Len(), "queue holds less than the model")
	chk.Zero(q.Count())

	return &result
}
