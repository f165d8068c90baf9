//go:build linux
// +build linux

package eventp

import "golang.org/x/sys/unix"

// Interest is a readiness-flag bitmask describing what a Subscriber wants
// the reactor to watch for on its file descriptor. The zero value is the
// empty interest set; use NewInterest to start building one fluently.
//
// Interest is immutable: every builder method returns a new value rather
// than mutating the receiver, mirroring the chained construction style of
// the epoll flags it wraps.
type Interest struct {
	flags uint32
}

// NewInterest returns the empty interest set, the recommended entry point
// for fluently building up an Interest (e.g. NewInterest().Read().EdgeTriggered()).
func NewInterest() Interest {
	return Interest{}
}

func (i Interest) add(flag uint32) Interest {
	return Interest{flags: i.flags | flag}
}

func (i Interest) remove(flag uint32) Interest {
	return Interest{flags: i.flags &^ flag}
}

// Read adds interest in readable events (EPOLLIN).
func (i Interest) Read() Interest { return i.add(unix.EPOLLIN) }

// RemoveRead removes interest in readable events.
func (i Interest) RemoveRead() Interest { return i.remove(unix.EPOLLIN) }

// Write adds interest in writable events (EPOLLOUT).
func (i Interest) Write() Interest { return i.add(unix.EPOLLOUT) }

// RemoveWrite removes interest in writable events.
func (i Interest) RemoveWrite() Interest { return i.remove(unix.EPOLLOUT) }

// ReadWrite is equivalent to Read().Write().
func (i Interest) ReadWrite() Interest { return i.Read().Write() }

// RDHUP adds interest in peer-closed-write-half events (EPOLLRDHUP).
func (i Interest) RDHUP() Interest { return i.add(unix.EPOLLRDHUP) }

// RemoveRDHUP removes interest in EPOLLRDHUP.
func (i Interest) RemoveRDHUP() Interest { return i.remove(unix.EPOLLRDHUP) }

// Priority adds interest in out-of-band/priority events (EPOLLPRI).
func (i Interest) Priority() Interest { return i.add(unix.EPOLLPRI) }

// RemovePriority removes interest in EPOLLPRI.
func (i Interest) RemovePriority() Interest { return i.remove(unix.EPOLLPRI) }

// EdgeTriggered requests edge-triggered notification (EPOLLET) instead of
// the default level-triggered behavior.
func (i Interest) EdgeTriggered() Interest { return i.add(unix.EPOLLET) }

// RemoveEdgeTriggered reverts to level-triggered notification.
func (i Interest) RemoveEdgeTriggered() Interest { return i.remove(unix.EPOLLET) }

// Oneshot requests one-shot notification (EPOLLONESHOT): after one event is
// reported the descriptor is disabled until rearmed with Modify.
func (i Interest) Oneshot() Interest { return i.add(unix.EPOLLONESHOT) }

// RemoveOneshot unsets one-shot mode.
func (i Interest) RemoveOneshot() Interest { return i.remove(unix.EPOLLONESHOT) }

// Exclusive sets exclusive wake-up mode (EPOLLEXCLUSIVE), useful for
// avoiding thundering-herd wakeups when several epoll instances watch the
// same descriptor. Per the kernel contract this may only be supplied on
// initial registration, never on Modify.
func (i Interest) Exclusive() Interest { return i.add(unix.EPOLLEXCLUSIVE) }

// RemoveExclusive unsets exclusive wake-up mode.
func (i Interest) RemoveExclusive() Interest { return i.remove(unix.EPOLLEXCLUSIVE) }

// Bits returns the raw epoll flag bitmask this Interest carries.
func (i Interest) Bits() uint32 { return i.flags }

// isExclusive reports whether EPOLLEXCLUSIVE is set, checked by the
// reactor to reject it on modify.
func (i Interest) isExclusive() bool { return i.flags&unix.EPOLLEXCLUSIVE != 0 }
