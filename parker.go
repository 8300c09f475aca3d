// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import (
	"runtime"
	"sync"
)

// maybeYield gives other goroutines a chance to run. Senders call it every
// reschedStride successful increments when rescheduling is permitted, so a
// goroutine that only ever sends cannot starve the rest of the program.
func maybeYield() {
	runtime.Gosched()
}

// parker abstracts over cooperative (channel-based) and native
// (mutex/condvar-based) suspension of the calling goroutine. Go exposes no
// user-visible distinction between a scheduler-parked goroutine and an
// OS-parked thread, so unlike the source this generalizes, the choice is
// made explicitly per Receiver (or per Select call) rather than inferred
// from the caller's runtime context.
type parker interface {
	// session begins a parking attempt across len(datums) packets: one for
	// a plain Receiver.RecvOpt, more than one for Select. datums[i] is the
	// wait datum belonging to the i-th packet being registered.
	session(datums []*waitDatum) parkSession
}

// parkSession is one parking attempt. newHandle is called once per packet
// being registered, in order; block suspends the caller until any handle
// produced by this session fires.
type parkSession interface {
	newHandle() wakeHandle
	block()
}

// cooperativeParker parks by receiving from a channel the waker closes,
// the default for both Receiver.RecvOpt and Select.
type cooperativeParker struct{}

func (cooperativeParker) session([]*waitDatum) parkSession {
	return &cooperativeSession{done: make(chan struct{})}
}

type cooperativeSession struct {
	done chan struct{}
	once sync.Once
}

func (s *cooperativeSession) fire(canResched bool) {
	s.once.Do(func() { close(s.done) })
	if canResched {
		runtime.Gosched()
	}
}

func (s *cooperativeSession) newHandle() wakeHandle {
	return cooperativeWakeHandle{s: s}
}

func (s *cooperativeSession) block() {
	<-s.done
}

type cooperativeWakeHandle struct {
	s *cooperativeSession
}

func (h cooperativeWakeHandle) wake(canResched bool) {
	h.s.fire(canResched)
}

func (h cooperativeWakeHandle) trash() {
	select {
	case <-h.s.done:
	default:
		protocolViolation("trash called on a wake handle that was never fired")
	}
}

// nativeParker parks on a mutex+condvar pair, for callers that need
// textbook native-thread blocking discipline.
type nativeParker struct{}

func (nativeParker) session(datums []*waitDatum) parkSession {
	if len(datums) == 1 {
		d := datums[0]
		return &nativeSession{mu: &d.mu, cond: d.condVar()}
	}
	// Select over more than one packet has no single wait datum to home
	// in on, so a fresh mutex/condvar is shared by every handle this
	// session produces, matching the shared-lock Select needs natively.
	mu := new(sync.Mutex)
	return &nativeSession{mu: mu, cond: sync.NewCond(mu)}
}

type nativeSession struct {
	mu    *sync.Mutex
	cond  *sync.Cond
	fired bool
}

func (s *nativeSession) newHandle() wakeHandle {
	return nativeWakeHandle{s: s}
}

func (s *nativeSession) block() {
	s.mu.Lock()
	for !s.fired {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

type nativeWakeHandle struct {
	s *nativeSession
}

func (h nativeWakeHandle) wake(canResched bool) {
	h.s.mu.Lock()
	h.s.fired = true
	h.s.mu.Unlock()
	h.s.cond.Signal()
	if canResched {
		runtime.Gosched()
	}
}

func (h nativeWakeHandle) trash() {
	h.s.mu.Lock()
	fired := h.s.fired
	h.s.mu.Unlock()
	if !fired {
		protocolViolation("trash called on a wake handle that was never fired")
	}
}
