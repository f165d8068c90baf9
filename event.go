//go:build linux
// +build linux

package eventp

import "golang.org/x/sys/unix"

// Event is the kernel-reported readiness-flag bitmask for a single wake,
// read-only from the caller's perspective. It shares the epoll flag
// universe with Interest but is never constructed by user code directly.
type Event struct {
	flags uint32
}

// eventFromFlags wraps a raw epoll events word into an Event.
func eventFromFlags(flags uint32) Event {
	return Event{flags: flags}
}

// Bits returns the raw epoll flag bitmask this Event carries.
func (e Event) Bits() uint32 { return e.flags }

// IsReadable reports readable readiness (EPOLLIN).
func (e Event) IsReadable() bool { return e.flags&unix.EPOLLIN != 0 }

// IsWritable reports writable readiness (EPOLLOUT).
func (e Event) IsWritable() bool { return e.flags&unix.EPOLLOUT != 0 }

// IsPriority reports an exceptional/out-of-band condition (EPOLLPRI).
func (e Event) IsPriority() bool { return e.flags&unix.EPOLLPRI != 0 }

// IsError reports an error condition (EPOLLERR). The kernel always reports
// this regardless of what was requested in Interest.
func (e Event) IsError() bool { return e.flags&unix.EPOLLERR != 0 }

// IsHangup reports a hang up (EPOLLHUP). The kernel always reports this
// regardless of what was requested in Interest.
func (e Event) IsHangup() bool { return e.flags&unix.EPOLLHUP != 0 }

// IsReadClosed reports that the peer closed its write half (EPOLLRDHUP),
// useful for detecting peer shutdown under edge-triggered monitoring.
func (e Event) IsReadClosed() bool { return e.flags&unix.EPOLLRDHUP != 0 }
