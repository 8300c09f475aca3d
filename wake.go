// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import "sync"

// wakeHandle is the token a parked receiver leaves in a Packet's wakeSlot.
// Exactly one of wake or trash is ever called on a given handle: wake by
// whichever sender's increment crosses the -1 boundary (or by
// dropProducer, or by register itself when the receiver decides not to
// park), trash by the receiver's own Select teardown when no sender
// claimed it.
type wakeHandle interface {
	wake(canResched bool)
	trash()
}

// waitDatum is per-receiver suspension storage: an OS mutex plus a lazily
// created condition variable. Only the native parker touches it; the
// cooperative parker suspends on a channel instead.
type waitDatum struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func (w *waitDatum) condVar() *sync.Cond {
	if w.cond == nil {
		w.cond = sync.NewCond(&w.mu)
	}
	return w.cond
}
