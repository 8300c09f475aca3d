// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

// SingleSender is the exclusive producer half of a Single channel. It is
// not clonable; closing it is the only way to drop its producer reference.
type SingleSender[T any] struct {
	packet *Packet
	queue  *spscUnbounded[T]
	closed bool
}

// Send pushes v, panicking with a *DisconnectError if the receiver has
// gone. It never blocks.
func (s *SingleSender[T]) Send(v T) {
	if !s.try(v, true) {
		panic(&DisconnectError{Op: "send"})
	}
}

// TrySend pushes v, reporting false if the receiver has gone. It never
// blocks.
func (s *SingleSender[T]) TrySend(v T) bool {
	return s.try(v, true)
}

// SendDeferred is Send but guarantees it never reschedules the calling
// goroutine, even on a successful wake.
func (s *SingleSender[T]) SendDeferred(v T) {
	if !s.try(v, false) {
		panic(&DisconnectError{Op: "send"})
	}
}

// TrySendDeferred is TrySend but guarantees it never reschedules.
func (s *SingleSender[T]) TrySendDeferred(v T) bool {
	return s.try(v, false)
}

func (s *SingleSender[T]) try(v T, canResched bool) bool {
	s.queue.push(v)
	prev, mustWake := s.packet.increment()
	switch {
	case mustWake:
		w := s.packet.wakeSlot
		s.packet.wakeSlot = nil
		if w == nil {
			protocolViolation("increment observed count -1 with an empty wake slot")
		}
		w.wake(canResched)
		return true
	case prev == -2:
		// A receiver mid-Select across multiple packets; legitimate,
		// no wake owed.
		return true
	case prev == disconnected:
		return s.queue.isEmpty()
	default:
		if prev < 0 {
			protocolViolation("increment observed an unexpected negative count %d", prev)
		}
		if canResched && prev > 0 && prev%reschedStride == 0 {
			maybeYield()
		}
		return true
	}
}

// Close drops this sender's producer reference. On the last reference it
// disconnects the channel and wakes a parked receiver.
func (s *SingleSender[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.packet.dropProducer()
}

// SharedSender is a clonable producer half of a Shared channel. Any number
// of clones may send concurrently; each carries its own producer
// reference, released by Close.
type SharedSender[T any] struct {
	packet *Packet
	queue  *mpscUnbounded[T]
	closed bool
}

// Clone returns a new SharedSender funneling into the same channel,
// incrementing the shared producer reference count.
func (s *SharedSender[T]) Clone() *SharedSender[T] {
	s.packet.producerRefs.AddAcqRel(1)
	return &SharedSender[T]{packet: s.packet, queue: s.queue}
}

// Send pushes v, panicking with a *DisconnectError if every receiver
// reference has gone. It never blocks.
func (s *SharedSender[T]) Send(v T) {
	if !s.try(v, true) {
		panic(&DisconnectError{Op: "send"})
	}
}

// TrySend pushes v, reporting false if the receiver has gone. It never
// blocks.
func (s *SharedSender[T]) TrySend(v T) bool {
	return s.try(v, true)
}

// SendDeferred is Send but guarantees it never reschedules the calling
// goroutine.
func (s *SharedSender[T]) SendDeferred(v T) {
	if !s.try(v, false) {
		panic(&DisconnectError{Op: "send"})
	}
}

// TrySendDeferred is TrySend but guarantees it never reschedules.
func (s *SharedSender[T]) TrySendDeferred(v T) bool {
	return s.try(v, false)
}

func (s *SharedSender[T]) try(v T, canResched bool) bool {
	s.queue.push(v)
	prev, mustWake := s.packet.increment()
	switch {
	case prev == disconnected:
		return s.queue.isEmpty()
	case mustWake:
		w := s.packet.wakeSlot
		s.packet.wakeSlot = nil
		if w == nil {
			protocolViolation("increment observed count -1 with an empty wake slot")
		}
		w.wake(canResched)
		return true
	default:
		if canResched && prev > 0 && prev%reschedStride == 0 {
			maybeYield()
		}
		return true
	}
}

// Close drops this clone's producer reference. On the last reference it
// disconnects the channel and wakes a parked receiver.
func (s *SharedSender[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.packet.dropProducer()
}
