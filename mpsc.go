// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// mpscNode is one link in the intrusive MPSC list. The stub node (the
// queue's initial head) carries no value.
type mpscNode[T any] struct {
	next  atomic.Pointer[mpscNode[T]]
	value T
}

// mpscNodeCache is a capped Treiber-stack free list of retired mpscNodes,
// the redesign this package adopts over the source it generalizes (which
// leaves its MPSC queue un-node-cached, allocating fresh on every push):
// spec.md §9 calls for bounding that allocation to match the SPSC side's
// segment recycling.
type mpscNodeCache[T any] struct {
	top   atomic.Pointer[mpscNode[T]]
	size  atomix.Int64
	limit int64
}

func newMPSCNodeCache[T any](limit int64) *mpscNodeCache[T] {
	return &mpscNodeCache[T]{limit: limit}
}

func (c *mpscNodeCache[T]) get() *mpscNode[T] {
	for {
		top := c.top.Load()
		if top == nil {
			return nil
		}
		next := top.next.Load()
		if c.top.CompareAndSwap(top, next) {
			c.size.AddAcqRel(-1)
			top.next.Store(nil)
			return top
		}
	}
}

func (c *mpscNodeCache[T]) put(n *mpscNode[T]) {
	if c.size.LoadAcquire() >= c.limit {
		return
	}
	var zero T
	n.value = zero
	for {
		top := c.top.Load()
		n.next.Store(top)
		if c.top.CompareAndSwap(top, n) {
			c.size.AddAcqRel(1)
			return
		}
	}
}

// mpscUnbounded is the classic Vyukov/libstd intrusive singly-linked MPSC
// queue: producers atomically swap themselves onto a shared tail, the
// single consumer walks from head to head.next. A push that has claimed
// the tail but not yet linearized its predecessor's next pointer produces
// popInconsistent rather than popEmpty. Retired nodes are returned to a
// capped free list (default 128, matching the SPSC queue's node cache)
// rather than left to the garbage collector, per spec.md §9's MPSC
// node-cache redesign note.
type mpscUnbounded[T any] struct {
	_     pad
	head  *mpscNode[T] // consumer-owned
	_     pad
	tail  atomic.Pointer[mpscNode[T]] // producers race here
	_     pad
	cache *mpscNodeCache[T]
}

func newMPSCUnbounded[T any](nodeCacheLimit int) *mpscUnbounded[T] {
	stub := &mpscNode[T]{}
	q := &mpscUnbounded[T]{head: stub, cache: newMPSCNodeCache[T](int64(nodeCacheLimit))}
	q.tail.Store(stub)
	return q
}

func (q *mpscUnbounded[T]) push(v T) {
	n := q.cache.get()
	if n == nil {
		n = &mpscNode[T]{}
	}
	n.value = v
	prev := q.tail.Swap(n)
	prev.next.Store(n)
}

func (q *mpscUnbounded[T]) pop() (T, popStatus) {
	first := q.head
	next := first.next.Load()
	if next == nil {
		var zero T
		if q.tail.Load() == first {
			return zero, popEmpty
		}
		// A producer has swapped in a new tail but has not yet linked it
		// to first.next: the push is in flight, not lost.
		return zero, popInconsistent
	}
	q.head = next
	v := next.value
	q.cache.put(first)
	return v, popData
}

func (q *mpscUnbounded[T]) isEmpty() bool {
	return q.head.next.Load() == nil
}
