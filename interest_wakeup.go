//go:build linux && !mips && !mipsle

package eventp

import "golang.org/x/sys/unix"

// Wakeup adds EPOLLWAKEUP, preventing system suspend while this event is
// pending or being processed. Absent on mips/mipsle, where the kernel does
// not define the flag, so the builder hides the method there instead of
// failing at runtime.
func (i Interest) Wakeup() Interest { return i.add(unix.EPOLLWAKEUP) }

// RemoveWakeup unsets EPOLLWAKEUP.
func (i Interest) RemoveWakeup() Interest { return i.remove(unix.EPOLLWAKEUP) }
