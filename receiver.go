// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import (
	"iter"

	"code.hybscloud.com/spin"
)

// inconsistentLogThreshold is the number of Inconsistent-spin iterations a
// RecvOpt call tolerates silently before reporting it to the diagnostic
// Logger. Spinning past this is never incorrect (a concurrent push is
// guaranteed to linearize eventually), but it is worth knowing about.
const inconsistentLogThreshold = 10000

// Receiver is the single-consumer half of a channel, backed by either an
// SPSC queue (paired with a [SingleSender]) or an MPSC queue (paired with
// a [SharedSender]). A Receiver is never clonable and must only ever be
// used from one goroutine at a time.
type Receiver[T any] struct {
	packet *Packet
	queue  chanQueue[T]
	parker parker
	logger Logger
	closed bool
}

// packetRef implements Selectable.
func (r *Receiver[T]) packetRef() *Packet { return r.packet }

// TryRecv pops a value without blocking. ok is false if nothing is
// currently buffered (the channel may still be open) or if the channel is
// disconnected and drained.
func (r *Receiver[T]) TryRecv() (v T, ok bool) {
	val, status := r.queue.pop()
	switch status {
	case popData:
		r.packet.steals++
		return val, true
	default:
		var zero T
		return zero, false
	}
}

// RecvOpt blocks if the channel is empty, returning ok=false only once the
// channel is disconnected and fully drained.
func (r *Receiver[T]) RecvOpt() (v T, ok bool) {
	if val, found := r.TryRecv(); found {
		return val, true
	}

	r.packet.parkOne(r.parker, r.packet.decrement)

	val, status := r.queue.pop()
	switch status {
	case popData:
		return val, true
	case popInconsistent:
		sw := spin.Wait{}
		spins := 0
		for {
			val, status = r.queue.pop()
			if status == popData {
				return val, true
			}
			if status == popEmpty {
				protocolViolation("recv_opt: inconsistent pop resolved to empty after a legitimate wake")
			}
			spins++
			if spins == inconsistentLogThreshold && r.logger != nil {
				r.logger.Warn("taskchan: RecvOpt inconsistent spin exceeded threshold", "spins", spins)
			}
			sw.Once()
		}
	default:
		if r.packet.count.LoadAcquire() != disconnected {
			protocolViolation("recv_opt: empty re-poll after a legitimate wake on a connected channel")
		}
		var zero T
		return zero, false
	}
}

// Recv blocks until a value is available, panicking with a
// *DisconnectError if the channel disconnects first.
func (r *Receiver[T]) Recv() T {
	v, ok := r.RecvOpt()
	if !ok {
		panic(&DisconnectError{Op: "recv"})
	}
	return v
}

// Iter returns a sequence that yields every value RecvOpt would, stopping
// when the channel disconnects. It is not restartable.
func (r *Receiver[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := r.RecvOpt()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close drops the receiver's reference, disconnecting the channel. Senders
// learn of this on their next Send/TrySend.
func (r *Receiver[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.packet.dropReceiver()
}
