// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

// popStatus is the three-way result of a single-consumer pop, matching
// spec.md's MPSC queue contract (§6): a pop either yields data, finds the
// queue empty, or observes a push that has claimed a slot but has not yet
// been linearized by its producer.
type popStatus int

const (
	popEmpty popStatus = iota
	popData
	popInconsistent
)

// chanQueue is the producer/consumer surface a Receiver pops from,
// regardless of which concrete queue backs it.
type chanQueue[T any] interface {
	push(v T)
	pop() (T, popStatus)
	isEmpty() bool
}

// spscQueue is the producer/consumer surface a SingleSender/Receiver pair
// shares: unbounded, wait-free push, wait-free pop.
//
// push never fails (the queue is unbounded); pop reports only popEmpty or
// popData: an SPSC queue has no concurrent-producer linearization gap,
// so popInconsistent cannot occur.
type spscQueue[T any] = chanQueue[T]

// mpscQueue is the producer/consumer surface a SharedSender/Receiver pair
// shares: unbounded, lock-free push (many producers), wait-free pop (one
// consumer). pop may report popInconsistent: a concurrent push has claimed
// a slot but not yet linked it in, and a later pop is guaranteed to see it
// once that producer completes.
type mpscQueue[T any] = chanQueue[T]
