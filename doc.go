// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package taskchan provides unbounded, lock-free, task-to-task channels.
//
// Send never blocks: a channel behaves as if it has an infinite internal
// buffer. Receive blocks the calling goroutine (never the OS thread, in
// the default configuration) whenever the channel is empty.
//
// The package offers two channel flavors:
//
//   - Single: one exclusive producer ([SingleSender]), backed by an SPSC
//     queue.
//   - Shared: any number of cloned producers ([SharedSender]), backed by
//     an MPSC queue.
//
// Both flavors feed the same kind of consumer, [Receiver], which is never
// clonable: a taskchan channel has exactly one consumer.
//
// # Quick Start
//
//	r, s := taskchan.NewSingle[int]()
//	s.Send(1)
//	fmt.Println(r.Recv()) // 1
//
//	r, s := taskchan.NewShared[string]()
//	for range 8 {
//	    go func(s *taskchan.SharedSender[string]) {
//	        defer s.Close()
//	        s.Send("hello")
//	    }(s.Clone())
//	}
//	s.Close()
//	for v, ok := r.RecvOpt(); ok; v, ok = r.RecvOpt() {
//	    fmt.Println(v)
//	}
//
// # Disconnect
//
// A channel disconnects when either every producer has been closed, or the
// receiver has been closed. [SingleSender.Send] and [SharedSender.Send]
// panic when sending on a disconnected channel (the channel's way of
// propagating task failure to a linked sender, mirroring the source this
// package generalizes); [SingleSender.TrySend]/[SharedSender.TrySend]
// instead return false. Symmetrically, [Receiver.Recv] panics on a
// disconnected, empty channel while [Receiver.RecvOpt] returns ok=false.
//
// # Selection
//
// [Select] blocks on any number of [Receiver] values of possibly differing
// element types simultaneously, returning the smallest index among those
// that have data or are disconnected.
//
// # Parking
//
// A blocked [Receiver.Recv] and a blocked [Select] suspend the calling
// goroutine without blocking its OS thread by default.
// [WithNativeParker] switches a channel's Receiver, and [SelectNative] a
// single selection, to mutex/condvar-based parking instead, for callers that need textbook
// native-thread blocking semantics (for example, a receiver driven from a
// pinned OS thread via cgo).
//
// # Diagnostics
//
// The engine never logs on the hot path. [WithLogger] attaches an optional
// sink (see [Logger]), consulted only when [Receiver.RecvOpt] spins on a
// shared channel's inconsistent-pop window for longer than usual. A nil
// Logger, the default, costs a single pointer comparison.
package taskchan
