// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// spscSegmentCap is the number of slots in one ring segment. Segments are
// chained into an unbounded queue; this is the granularity at which the
// queue grows and shrinks.
const spscSegmentCap = 32

// spscSegment is a Lamport ring buffer of fixed capacity, linked into the
// next segment once full. Producer and consumer each own their own index
// into the same segment; the consumer caches the producer's tail, while
// the producer never reads head, since a full segment is followed by a new
// one rather than waited on.
type spscSegment[T any] struct {
	_          pad
	head       atomix.Uint64 // consumer reads from here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer writes here
	_          pad
	cachedHead uint64 // not read or written: the producer needs no view of head
	_          pad
	next       atomic.Pointer[spscSegment[T]]
	buffer     [spscSegmentCap]T
}

// spscNodeCache is a small lock-free free list of retired segments, capped
// at limit, that the producer draws from instead of allocating a fresh
// segment on every wraparound. Consumer and producer both touch it (the
// consumer retires into it, the producer takes from it), so it needs its
// own synchronization independent of the queue's single-producer/
// single-consumer discipline: a short Treiber stack, reusing each
// segment's own next field as the free-list link.
type spscNodeCache[T any] struct {
	top   atomic.Pointer[spscSegment[T]]
	size  atomix.Int64
	limit int64
}

func newSPSCNodeCache[T any](limit int64) *spscNodeCache[T] {
	return &spscNodeCache[T]{limit: limit}
}

func (c *spscNodeCache[T]) get() *spscSegment[T] {
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

func (c *spscNodeCache[T]) put(seg *spscSegment[T]) {
	if c.size.LoadAcquire() >= c.limit {
		return
	}
	seg.head.StoreRelease(0)
	seg.tail.StoreRelease(0)
	seg.cachedTail = 0
	for {
		top := c.top.Load()
		seg.next.Store(top)
		if c.top.CompareAndSwap(top, seg) {
			c.size.AddAcqRel(1)
			return
		}
	}
}

// spscUnbounded is an unbounded single-producer single-consumer queue: a
// linked list of spscSegment rings with a capped free list recycling
// retired segments back to the producer.
type spscUnbounded[T any] struct {
	_           pad
	producerSeg *spscSegment[T] // producer-owned
	_           pad
	consumerSeg *spscSegment[T] // consumer-owned
	_           pad
	cache *spscNodeCache[T]
}

func newSPSCUnbounded[T any](nodeCacheLimit int) *spscUnbounded[T] {
	seg := &spscSegment[T]{}
	return &spscUnbounded[T]{
		producerSeg: seg,
		consumerSeg: seg,
		cache:       newSPSCNodeCache[T](int64(nodeCacheLimit)),
	}
}

func (q *spscUnbounded[T]) push(v T) {
	seg := q.producerSeg
	tail := seg.tail.LoadRelaxed()
	if tail >= spscSegmentCap {
		next := q.cache.get()
		if next == nil {
			next = &spscSegment[T]{}
		}
		seg.next.Store(next)
		q.producerSeg = next
		seg = next
		tail = 0
	}
	seg.buffer[tail] = v
	seg.tail.StoreRelease(tail + 1)
}

func (q *spscUnbounded[T]) pop() (T, popStatus) {
	for {
		seg := q.consumerSeg
		head := seg.head.LoadRelaxed()
		if head < spscSegmentCap {
			if head >= seg.cachedTail {
				seg.cachedTail = seg.tail.LoadAcquire()
				if head >= seg.cachedTail {
					var zero T
					return zero, popEmpty
				}
			}
			v := seg.buffer[head]
			var zero T
			seg.buffer[head] = zero
			seg.head.StoreRelease(head + 1)
			return v, popData
		}
		next := seg.next.Load()
		if next == nil {
			var zero T
			return zero, popEmpty
		}
		q.consumerSeg = next
		q.cache.put(seg)
	}
}

func (q *spscUnbounded[T]) isEmpty() bool {
	seg := q.consumerSeg
	for {
		head := seg.head.LoadRelaxed()
		if head < spscSegmentCap {
			return head >= seg.tail.LoadAcquire()
		}
		next := seg.next.Load()
		if next == nil {
			return true
		}
		seg = next
	}
}
