//go:build linux
// +build linux

package eventp

import "golang.org/x/sys/unix"

const defaultBufferCapacity = 256

// options holds the construction-time configuration assembled by Option
// values passed to New.
type options struct {
	bufferCapacity int
	createFlags    int
	detachPoolSize int
}

func defaultOptions() *options {
	return &options{
		bufferCapacity: defaultBufferCapacity,
		createFlags:    unix.EPOLL_CLOEXEC,
		detachPoolSize: 0, // meaning ants.DefaultAntsPoolSize (unbounded-by-default is not used here; see WithDetachPool)
	}
}

// Option configures a Reactor at construction time, the ordinary
// functional-options idiom.
type Option func(*options)

// WithBufferCapacity sets the capacity of the event buffer epoll_wait
// drains into; it must be at least 1. The default is 256.
func WithBufferCapacity(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.bufferCapacity = n
		}
	}
}

// WithCreateFlags overrides the flags passed to epoll_create1. The default
// is EPOLL_CLOEXEC, matching Go runtime conventions.
func WithCreateFlags(flags int) Option {
	return func(o *options) {
		o.createFlags = flags
	}
}

// WithDetachPool sizes the bounded worker pool that runs Detacher.OnDetached
// notifications. A size of 0 requests ants' default pool size. Without this
// option, OnDetached is still invoked through a pool sized to the default.
func WithDetachPool(size int) Option {
	return func(o *options) {
		o.detachPoolSize = size
	}
}
