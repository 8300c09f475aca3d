// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

// config holds the construction-time knobs a channel pair is built with.
type config struct {
	nodeCacheLimit int
	logger         Logger
	parker         parker
}

func defaultConfig() config {
	return config{
		nodeCacheLimit: 128,
		parker:         cooperativeParker{},
	}
}

// Option configures a channel pair at construction time. NewSingle and
// NewShared apply options left to right.
type Option func(*config)

// WithNodeCache sets the maximum number of retired queue nodes (ring
// segments for a Single channel's SPSC queue, individual nodes for a
// Shared channel's MPSC queue) kept on a free list before letting the
// garbage collector reclaim them outright. The default is 128.
func WithNodeCache(limit int) Option {
	if limit < 0 {
		panic("taskchan: node cache limit must be >= 0")
	}
	return func(c *config) { c.nodeCacheLimit = limit }
}

// WithLogger attaches a diagnostic sink consulted only on cold paths (see
// [Logger]). The default is nil: no logging.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithNativeParker switches a channel's Receiver to mutex/condvar-based
// parking instead of the default channel-based cooperative parking. See
// [Select]'s native counterpart for the multi-packet case.
func WithNativeParker() Option {
	return func(c *config) { c.parker = nativeParker{} }
}

func buildConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// pad is cache line padding to prevent false sharing between hot fields.
type pad [64]byte
