// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import (
	"math"

	"code.hybscloud.com/atomix"
)

// disconnected is the sentinel count value meaning one end of the channel
// has torn down. Once a Packet's count holds this value it never
// transitions to any other value.
const disconnected = int64(math.MinInt64)

// reschedStride is the increment interval at which a producer may
// voluntarily yield, when rescheduling is permitted, to improve fairness
// against a receiver that is falling behind.
const reschedStride = 200

// Packet is the atomic coordination state shared by every sender and the
// single receiver of one channel. It holds no payload; the typed queue
// (SPSC or MPSC) lives alongside it in the Sender/Receiver wrappers, which
// is what lets Select operate over receivers of differing element types in
// one call.
//
// count's states:
//
//	count == disconnected: one end has torn down.
//	count >= 0: items not yet accounted for by the receiver, minus its
//	            un-merged steals; no receiver is parked.
//	count == -1: a receiver is parked and wakeSlot is non-nil.
//	count <= -2: the receiver has registered itself against this packet as
//	             part of a multi-packet Select.
type Packet struct {
	_            pad
	count        atomix.Int64
	_            pad
	producerRefs atomix.Int64
	_            pad
	// steals is touched only by the receiver: it counts successful
	// non-blocking pops since the last blocking pop, and is folded into
	// count the next time the receiver parks. Zero whenever the receiver
	// is parked.
	steals int64
	// wakeSlot is written by the receiver's register (always before the
	// count op that publishes -1, so the release/acquire pair on count
	// orders this plain field) and consumed by whichever sender's
	// increment crosses the -1 boundary, or by the receiver's own
	// abortSelection on the teardown path. At most one of those ever
	// fires it.
	wakeSlot  wakeHandle
	waitDatum waitDatum
}

// newPacket returns a Packet with count at zero (empty, not parked) and one
// live producer reference.
func newPacket() *Packet {
	p := &Packet{}
	p.producerRefs.StoreRelaxed(1)
	return p
}

// increment is called by a producer immediately after pushing a value. It
// reports the count observed before the add; a return of true for mustWake
// means the caller crossed the -1 boundary and now owns wakeSlot.
func (p *Packet) increment() (prev int64, mustWake bool) {
	n := p.count.AddAcqRel(1)
	prev = n - 1
	if prev == disconnected {
		// The add corrupted the sentinel; repair it. A concurrent
		// increment landing in this narrow window may briefly observe a
		// non-sentinel value, exactly as the source this protocol
		// generalizes accepts.
		p.count.StoreRelease(disconnected)
		return disconnected, false
	}
	return prev, prev == -1
}

// decrement is called by the receiver, wakeSlot already installed, right
// before deciding whether to actually block. It folds steals into count and
// reports whether the receiver must block.
func (p *Packet) decrement() bool {
	steals := p.steals
	p.steals = 0
	n := p.count.AddAcqRel(-(1 + steals))
	prev := n + (1 + steals)
	if prev == disconnected {
		p.count.StoreRelease(disconnected)
		return false
	}
	if prev < 0 {
		protocolViolation("decrement observed count %d before folding steals", prev)
	}
	return prev-steals <= 0
}

// abortSelection restores count after the receiver wakes from a Select so
// no sender mistakes it for still parked, reclaiming wakeSlot if takeWake
// is set. It reports whether data is definitely available on this packet
// or the packet is disconnected.
func (p *Packet) abortSelection(takeWake bool) bool {
	cnt := p.count.LoadAcquire()
	var steals int64
	if cnt < 0 && cnt != disconnected {
		steals = -cnt
	}
	n := p.count.AddAcqRel(steals + 1)
	prev := n - (steals + 1)

	if prev == disconnected {
		p.count.StoreRelease(disconnected)
		return true
	}

	if prev <= -1 {
		if takeWake {
			w := p.wakeSlot
			p.wakeSlot = nil
			if w == nil {
				protocolViolation("abortSelection: take_wake requested on an empty wake slot")
			}
			w.trash()
		} else if p.wakeSlot != nil {
			protocolViolation("abortSelection: wake slot should be empty")
		}
	}
	if p.steals != 0 {
		protocolViolation("abortSelection: steals should be zero before folding, got %d", p.steals)
	}
	p.steals = steals
	return prev >= 0
}

// dropProducer decrements producerRefs. On the 1->0 transition it swaps in
// disconnected and, if a receiver was parked, wakes it.
func (p *Packet) dropProducer() {
	left := p.producerRefs.AddAcqRel(-1)
	if left < 0 {
		protocolViolation("producer reference count went negative")
	}
	if left != 0 {
		return
	}
	switch prev := p.count.Swap(disconnected); {
	case prev == -1:
		w := p.wakeSlot
		p.wakeSlot = nil
		if w == nil {
			protocolViolation("drop_producer observed count -1 with an empty wake slot")
		}
		w.wake(false)
	case prev == disconnected:
	default:
		if prev < 0 {
			protocolViolation("drop_producer observed an unexpected negative count %d", prev)
		}
	}
}

// dropReceiver unconditionally marks the packet disconnected. Senders learn
// of this on their next increment.
func (p *Packet) dropReceiver() {
	p.count.StoreRelease(disconnected)
}

// canRecv is a non-atomic, non-authoritative probe used only as a Select
// fast-path shortcut: true iff the packet is disconnected or the receiver's
// accounting shows buffered data.
func (p *Packet) canRecv() bool {
	cnt := p.count.LoadRelaxed()
	return cnt == disconnected || cnt-p.steals > 0
}

// register installs a wake handle from s into wakeSlot and asks decide
// whether parking should actually proceed. If decide returns false the
// slot is cleared immediately, the handle is fired so the session counts
// as woken, and no blocking occurs on this packet.
func (p *Packet) register(s parkSession, decide func() bool) bool {
	if p.wakeSlot != nil {
		protocolViolation("register called with a non-empty wake slot")
	}
	p.wakeSlot = s.newHandle()
	if decide() {
		return true
	}
	w := p.wakeSlot
	p.wakeSlot = nil
	w.wake(false)
	return false
}

// parkOne offers a fresh single-packet parking session to decide via
// register; if decide returns true it blocks until the receiver is woken.
func (p *Packet) parkOne(pk parker, decide func() bool) {
	s := pk.session([]*waitDatum{&p.waitDatum})
	if p.register(s, decide) {
		s.block()
	}
}
