// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

// NewSingle creates a channel pair with one exclusive producer, backed by
// an unbounded SPSC queue.
func NewSingle[T any](opts ...Option) (*Receiver[T], *SingleSender[T]) {
	c := buildConfig(opts)
	p := newPacket()
	q := newSPSCUnbounded[T](c.nodeCacheLimit)
	r := &Receiver[T]{packet: p, queue: q, parker: c.parker, logger: c.logger}
	s := &SingleSender[T]{packet: p, queue: q}
	return r, s
}

// NewShared creates a channel pair with a clonable producer, backed by an
// unbounded MPSC queue.
func NewShared[T any](opts ...Option) (*Receiver[T], *SharedSender[T]) {
	c := buildConfig(opts)
	p := newPacket()
	q := newMPSCUnbounded[T](c.nodeCacheLimit)
	r := &Receiver[T]{packet: p, queue: q, parker: c.parker, logger: c.logger}
	s := &SharedSender[T]{packet: p, queue: q}
	return r, s
}
